package core

import (
	"strings"

	debversion "github.com/knqyf263/go-deb-version"

	"ubuntu-package-status/internal/types"
)

// versionCache memoizes parsed Debian versions so publication selection
// does not reparse the same strings while comparing candidates.
type versionCache struct {
	deb map[string]debversion.Version
}

func newVersionCache() *versionCache {
	return &versionCache{deb: map[string]debversion.Version{}}
}

// debVersion returns a parsed Debian version, caching the result.
func (c *versionCache) debVersion(value string) (debversion.Version, error) {
	if parsed, ok := c.deb[value]; ok {
		return parsed, nil
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, err
	}
	c.deb[value] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 comparing two Debian version strings.
// Unparseable versions fall back to lexical comparison so selection
// stays deterministic.
func (c *versionCache) compare(a string, b string) int {
	v1, err1 := c.debVersion(a)
	v2, err2 := c.debVersion(b)
	if err1 != nil || err2 != nil {
		return strings.Compare(a, b)
	}
	return v1.Compare(v2)
}

// latestPublication picks the publication with the highest Debian
// version.  Equal versions break the tie on the most recent publication
// date, which matters for binaries republished across components.
func latestPublication(publications []types.Publication) types.Publication {
	cache := newVersionCache()
	best := publications[0]
	for _, candidate := range publications[1:] {
		switch cache.compare(candidate.Version, best.Version) {
		case 1:
			best = candidate
		case 0:
			if candidate.DatePublished.After(best.DatePublished) {
				best = candidate
			}
		}
	}
	return best
}
