package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ubuntu-package-status/internal/types"
)

// ---------------------------------------------------------------------------
// NormalizeWatchlist
// ---------------------------------------------------------------------------

func TestNormalizeWatchlist(t *testing.T) {
	defaults := types.WatchlistDefaults{
		Series:  []string{"jammy", "noble"},
		Pockets: []string{"security", "updates"},
	}

	tests := []struct {
		name     string
		entry    types.PackageQuery
		expected types.PackageQuery
	}{
		{
			name:  "bare entry gets all defaults",
			entry: types.PackageQuery{Name: "nginx"},
			expected: types.PackageQuery{
				Name:    "nginx",
				Series:  []string{"jammy", "noble"},
				Pockets: []string{"security", "updates"},
			},
		},
		{
			name: "explicit values override defaults",
			entry: types.PackageQuery{
				Name:    "openssl",
				Series:  []string{"focal"},
				Pockets: []string{"release"},
			},
			expected: types.PackageQuery{
				Name:    "openssl",
				Series:  []string{"focal"},
				Pockets: []string{"release"},
			},
		},
		{
			name: "partial override mixes with defaults",
			entry: types.PackageQuery{
				Name:   "curl",
				Series: []string{"focal"},
			},
			expected: types.PackageQuery{
				Name:    "curl",
				Series:  []string{"focal"},
				Pockets: []string{"security", "updates"},
			},
		},
		{
			name: "casing and whitespace canonicalized",
			entry: types.PackageQuery{
				Name:    "  nginx ",
				Series:  []string{"Jammy", " NOBLE "},
				Pockets: []string{"Security"},
			},
			expected: types.PackageQuery{
				Name:    "nginx",
				Series:  []string{"jammy", "noble"},
				Pockets: []string{"security"},
			},
		},
		{
			name: "duplicates dropped, first-seen order kept",
			entry: types.PackageQuery{
				Name:    "nginx",
				Series:  []string{"noble", "jammy", "noble"},
				Pockets: []string{"updates", "updates", "release"},
			},
			expected: types.PackageQuery{
				Name:    "nginx",
				Series:  []string{"noble", "jammy"},
				Pockets: []string{"updates", "release"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			normalized := NormalizeWatchlist(types.Watchlist{
				Defaults: defaults,
				Packages: []types.PackageQuery{tt.entry},
			})
			require.Len(t, normalized.Packages, 1)
			if diff := cmp.Diff(tt.expected, normalized.Packages[0]); diff != "" {
				t.Fatalf("unexpected normalized entry (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeWatchlistStandardPockets(t *testing.T) {
	// No entry pockets and no defaults -> the standard pocket set.
	normalized := NormalizeWatchlist(types.Watchlist{
		Defaults: types.WatchlistDefaults{Series: []string{"jammy"}},
		Packages: []types.PackageQuery{{Name: "nginx"}},
	})
	require.Len(t, normalized.Packages, 1)
	expected := []string{"release", "proposed", "security", "updates"}
	if diff := cmp.Diff(expected, normalized.Packages[0].Pockets); diff != "" {
		t.Fatalf("unexpected pocket fallback (-want +got):\n%s", diff)
	}
}

func TestNormalizeWatchlistDoesNotShareDefaultSlices(t *testing.T) {
	normalized := NormalizeWatchlist(types.Watchlist{
		Defaults: types.WatchlistDefaults{Series: []string{"jammy"}},
		Packages: []types.PackageQuery{{Name: "a"}, {Name: "b"}},
	})
	normalized.Packages[0].Pockets[0] = "mutated"
	assert.Equal(t, "release", normalized.Packages[1].Pockets[0])
}

// ---------------------------------------------------------------------------
// ValidateWatchlist
// ---------------------------------------------------------------------------

func TestValidateWatchlistOK(t *testing.T) {
	watchlist := NormalizeWatchlist(types.Watchlist{
		Defaults: types.WatchlistDefaults{Series: []string{"jammy"}},
		Packages: []types.PackageQuery{{Name: "nginx"}},
	})
	require.NoError(t, ValidateWatchlist(t.Context(), watchlist))
}

func TestValidateWatchlistEmptyAllowed(t *testing.T) {
	// An empty package list is a valid degenerate run: the report comes
	// back empty instead of the tool erroring out.
	require.NoError(t, ValidateWatchlist(t.Context(), types.Watchlist{}))
}

func TestValidateWatchlistMissingName(t *testing.T) {
	err := ValidateWatchlist(t.Context(), types.Watchlist{
		Packages: []types.PackageQuery{
			{Name: "", Series: []string{"jammy"}, Pockets: []string{"release"}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a name")
}

func TestValidateWatchlistMissingSeries(t *testing.T) {
	err := ValidateWatchlist(t.Context(), types.Watchlist{
		Packages: []types.PackageQuery{
			{Name: "nginx", Pockets: []string{"release"}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no series")
}

func TestValidateWatchlistInvalidPocket(t *testing.T) {
	err := ValidateWatchlist(t.Context(), types.Watchlist{
		Packages: []types.PackageQuery{
			{Name: "nginx", Series: []string{"jammy"}, Pockets: []string{"nightly"}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "invalid pocket nightly")
}

func TestValidateWatchlistBackportsAllowed(t *testing.T) {
	err := ValidateWatchlist(t.Context(), types.Watchlist{
		Packages: []types.PackageQuery{
			{Name: "nginx", Series: []string{"jammy"}, Pockets: []string{"backports"}},
		},
	})
	require.NoError(t, err)
}
