package core

import (
	"context"
	"errors"
	"strings"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ubuntu-package-status/internal/ports"
	"ubuntu-package-status/internal/types"
)

// Aggregator walks a normalized watchlist in order and collects one
// status record per package/series/pocket combination.
type Aggregator struct {
	Archive ports.ArchivePort

	// OnResult, when set, is called after every completed combination.
	// The CLI uses it to advance the progress bar.
	OnResult func(record types.PackageStatusRecord)
}

func NewAggregator(archive ports.ArchivePort) Aggregator {
	return Aggregator{Archive: archive}
}

// Aggregate queries every combination the watchlist names, strictly in
// watchlist order, one lookup at a time.  A lookup failure marks its
// combination as not found and the run continues; any other error
// aborts the run.
func (a Aggregator) Aggregate(ctx context.Context, watchlist types.Watchlist) (types.StatusReport, error) {
	report := types.StatusReport{}
	for _, entry := range watchlist.Packages {
		assert.NotEmpty(ctx, entry.Name, "watchlist entry name must be set")
		for _, series := range entry.Series {
			for _, pocket := range entry.Pockets {
				if ctx.Err() != nil {
					return nil, errbuilder.New().
						WithCode(errbuilder.CodeInternal).
						WithMsg("status run canceled").
						WithCause(ctx.Err())
				}
				record, err := a.lookup(ctx, ports.PublicationQuery{
					Package: entry.Name,
					Series:  series,
					Pocket:  types.Pocket(pocket),
				})
				if err != nil {
					return nil, err
				}
				report = append(report, record)
				if a.OnResult != nil {
					a.OnResult(record)
				}
			}
		}
	}
	return report, nil
}

func (a Aggregator) lookup(ctx context.Context, query ports.PublicationQuery) (types.PackageStatusRecord, error) {
	record := types.PackageStatusRecord{
		Package: query.Package,
		Series:  query.Series,
		Pocket:  string(query.Pocket),
	}
	publications, err := a.Archive.FetchPublications(ctx, query)
	if err != nil {
		var lookupErr *types.LookupError
		if errors.As(err, &lookupErr) {
			log.Ctx(ctx).Error().
				Str("package", query.Package).
				Str("series", query.Series).
				Str("pocket", string(query.Pocket)).
				Err(err).
				Msg("archive lookup failed")
			record.Error = shortError(lookupErr.Err)
			return record, nil
		}
		return types.PackageStatusRecord{}, err
	}
	if len(publications) == 0 {
		log.Ctx(ctx).Debug().
			Str("package", query.Package).
			Str("series", query.Series).
			Str("pocket", string(query.Pocket)).
			Msg("no publication found")
		return record, nil
	}
	best := latestPublication(publications)
	record.Version = best.Version
	record.Component = best.Component
	if !best.DatePublished.IsZero() {
		record.DatePublished = best.DatePublished.UTC().Format(time.RFC3339)
	}
	record.Found = true
	return record, nil
}

// shortError flattens an error chain into the single-line marker
// embedded in status records.
func shortError(err error) string {
	if err == nil {
		return ""
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
