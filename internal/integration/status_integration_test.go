package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ubuntu-package-status/internal/app"
)

func TestStatusIntegration(t *testing.T) {
	var queries []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		queries = append(queries, query)
		if query.Get("binary_name") != "nginx" || query.Get("pocket") == "Proposed" {
			fmt.Fprint(w, `{"start": 0, "total_size": 0, "entries": []}`)
			return
		}
		fmt.Fprint(w, `{
			"start": 0,
			"total_size": 1,
			"entries": [
				{
					"binary_package_name": "nginx",
					"binary_package_version": "1.18.0-6ubuntu14.4",
					"component_name": "main",
					"date_published": "2024-03-05T12:30:00.123456+00:00",
					"pocket": "`+query.Get("pocket")+`",
					"status": "Published"
				}
			]
		}`)
	}))
	defer server.Close()

	configPath := filepath.Join(t.TempDir(), "watchlist.yaml")
	config := `defaults:
  series:
    - jammy
packages:
  - name: nginx
    pockets:
      - updates
      - proposed
  - name: no-such-package
    pockets:
      - release
`
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

	svc := app.NewService()
	result, err := svc.Status(t.Context(), app.StatusRequest{
		ConfigPath:       configPath,
		OutputFormat:     "txt",
		ArchiveBackend:   "launchpad",
		LaunchpadURL:     server.URL,
		HTTPTimeoutSec:   1,
		HTTPRetries:      1,
		HTTPRetryDelayMs: 1,
	})
	require.NoError(t, err)

	// One request per package/series/pocket combination, all of them
	// exact-match publishing history lookups.
	require.Len(t, queries, 3)
	for _, query := range queries {
		assert.Equal(t, "getPublishedBinaries", query.Get("ws.op"))
		assert.Equal(t, "true", query.Get("exact_match"))
	}
	assert.Equal(t, "Updates", queries[0].Get("pocket"))
	assert.Equal(t, "Proposed", queries[1].Get("pocket"))
	assert.Equal(t, "Release", queries[2].Get("pocket"))

	require.Len(t, result.Report, 3)
	assert.True(t, result.Report[0].Found)
	assert.Equal(t, "1.18.0-6ubuntu14.4", result.Report[0].Version)
	assert.False(t, result.Report[1].Found, "proposed should be empty")
	assert.False(t, result.Report[2].Found, "unknown package should be empty")

	lines := strings.Split(strings.TrimRight(result.Rendered, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PACKAGE")
	assert.Contains(t, lines[1], "1.18.0-6ubuntu14.4")
	assert.Contains(t, lines[3], "no-such-package")
}
