package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"ubuntu-package-status/internal/ports"
	"ubuntu-package-status/internal/types"
)

type WatchlistFileAdapter struct{}

func NewWatchlistFileAdapter() WatchlistFileAdapter {
	return WatchlistFileAdapter{}
}

func (a WatchlistFileAdapter) Load(path string) (types.Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Watchlist{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("watchlist file not found").
			WithCause(err)
	}
	var watchlist types.Watchlist
	if err := yaml.Unmarshal(data, &watchlist); err != nil {
		return types.Watchlist{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse watchlist yaml").
			WithCause(err)
	}
	return watchlist, nil
}

var _ ports.WatchlistPort = WatchlistFileAdapter{}
