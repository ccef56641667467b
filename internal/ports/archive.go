package ports

import (
	"context"

	"ubuntu-package-status/internal/types"
)

// PublicationQuery identifies a single package/series/pocket lookup
// against an archive backend.
type PublicationQuery struct {
	Package string
	Series  string
	Pocket  types.Pocket
}

// ArchivePort answers publication queries.  An empty result means the
// package is not currently published in that series/pocket; lookup
// failures are returned as *types.LookupError.
type ArchivePort interface {
	FetchPublications(ctx context.Context, query PublicationQuery) ([]types.Publication, error)
}
