package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ubuntu-package-status/internal/types"
)

// standardPockets is the pocket set queried when neither a package
// entry nor the watchlist defaults name any.
var standardPockets = []string{
	string(types.PocketRelease),
	string(types.PocketProposed),
	string(types.PocketSecurity),
	string(types.PocketUpdates),
}

var validPockets = map[types.Pocket]struct{}{
	types.PocketRelease:   {},
	types.PocketProposed:  {},
	types.PocketSecurity:  {},
	types.PocketUpdates:   {},
	types.PocketBackports: {},
}

// NormalizeWatchlist applies the watchlist defaults to every package
// entry, falls back to the standard pocket set, and canonicalizes
// casing.  Every entry of the returned watchlist carries explicit
// series and pockets.
func NormalizeWatchlist(watchlist types.Watchlist) types.Watchlist {
	out := watchlist
	out.Packages = make([]types.PackageQuery, len(watchlist.Packages))
	for i, entry := range watchlist.Packages {
		normalized := entry
		normalized.Name = strings.TrimSpace(entry.Name)
		normalized.Series = normalizeList(entry.Series)
		if len(normalized.Series) == 0 {
			normalized.Series = normalizeList(watchlist.Defaults.Series)
		}
		normalized.Pockets = normalizeList(entry.Pockets)
		if len(normalized.Pockets) == 0 {
			normalized.Pockets = normalizeList(watchlist.Defaults.Pockets)
		}
		if len(normalized.Pockets) == 0 {
			normalized.Pockets = append([]string(nil), standardPockets...)
		}
		out.Packages[i] = normalized
	}
	return out
}

// ValidateWatchlist checks a normalized watchlist: a name and a series
// set on every entry, and known pockets.  An empty package list is
// valid and yields an empty report.
func ValidateWatchlist(ctx context.Context, watchlist types.Watchlist) error {
	if len(watchlist.Packages) == 0 {
		log.Ctx(ctx).Warn().Msg("watchlist has no packages")
		return nil
	}
	for i, entry := range watchlist.Packages {
		if entry.Name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("watchlist package %d is missing a name", i))
		}
		if len(entry.Series) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package %s has no series (set entry series or defaults.series)", entry.Name))
		}
		for _, pocket := range entry.Pockets {
			if _, ok := validPockets[types.Pocket(pocket)]; !ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("package %s has invalid pocket %s", entry.Name, pocket))
			}
		}
	}
	log.Ctx(ctx).Debug().Int("packages", len(watchlist.Packages)).Msg("watchlist validated")
	return nil
}

// normalizeList lowercases, trims and dedupes a series or pocket list,
// preserving first-seen order.
func normalizeList(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
