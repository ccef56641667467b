package app

import (
	"ubuntu-package-status/internal/adapters"
	"ubuntu-package-status/internal/ports"
)

type Service struct {
	Watchlist ports.WatchlistPort
}

func NewService() Service {
	return Service{
		Watchlist: adapters.NewWatchlistFileAdapter(),
	}
}
