package app

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"ubuntu-package-status/internal/types"
)

// Skeleton renders a starter watchlist covering the common fields so a
// config can be bootstrapped with --config-skeleton.
func (s Service) Skeleton() (string, error) {
	watchlist := types.Watchlist{
		Defaults: types.WatchlistDefaults{
			Series:  []string{"jammy", "noble"},
			Pockets: []string{"release", "security", "updates"},
		},
		Packages: []types.PackageQuery{
			{Name: "nginx"},
			{
				Name:    "openssl",
				Series:  []string{"focal"},
				Pockets: []string{"security", "updates"},
			},
		},
	}
	data, err := yaml.Marshal(watchlist)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal watchlist skeleton").
			WithCause(err)
	}
	return string(data), nil
}
