package ports

import "ubuntu-package-status/internal/types"

type WatchlistPort interface {
	Load(path string) (types.Watchlist, error)
}
