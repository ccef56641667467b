package types

// WatchlistDefaults provides watchlist-level defaults that are applied
// to every package entry that does not set the field itself.  Embedding
// defaults in the watchlist keeps per-package entries short when a
// whole fleet tracks the same series.
type WatchlistDefaults struct {
	Series  []string `yaml:"series,omitempty"`
	Pockets []string `yaml:"pockets,omitempty"`
}

type PackageQuery struct {
	Name    string   `yaml:"name"`
	Series  []string `yaml:"series,omitempty"`
	Pockets []string `yaml:"pockets,omitempty"`
}

type Watchlist struct {
	Defaults WatchlistDefaults `yaml:"defaults,omitempty"`
	Packages []PackageQuery    `yaml:"packages"`
}
