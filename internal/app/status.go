package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	progressbar "github.com/schollz/progressbar/v3"

	"ubuntu-package-status/internal/adapters"
	"ubuntu-package-status/internal/core"
	"ubuntu-package-status/internal/ports"
	"ubuntu-package-status/internal/types"
)

// Status loads and validates the watchlist, queries the archive
// backend for every package/series/pocket combination, and renders the
// report.  The output format is parsed first so a bad format fails
// before any network traffic.
func (s Service) Status(ctx context.Context, req StatusRequest) (StatusResult, error) {
	format, err := core.ParseOutputFormat(req.OutputFormat)
	if err != nil {
		return StatusResult{}, err
	}
	configPath := strings.TrimSpace(req.ConfigPath)
	if configPath == "" {
		return StatusResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("config path is required")
	}
	watchlist, err := s.Watchlist.Load(configPath)
	if err != nil {
		return StatusResult{}, err
	}
	watchlist = core.NormalizeWatchlist(watchlist)
	if err := core.ValidateWatchlist(ctx, watchlist); err != nil {
		return StatusResult{}, err
	}
	archive, err := newArchiveAdapter(req)
	if err != nil {
		return StatusResult{}, err
	}
	aggregator := core.NewAggregator(archive)
	if req.Progress {
		bar := progressbar.Default(int64(countCombinations(watchlist)), "querying archive")
		aggregator.OnResult = func(types.PackageStatusRecord) {
			_ = bar.Add(1)
		}
	}
	report, err := aggregator.Aggregate(ctx, watchlist)
	if err != nil {
		return StatusResult{}, err
	}
	rendered, err := core.Render(report, format)
	if err != nil {
		return StatusResult{}, err
	}
	log.Ctx(ctx).Debug().
		Int("records", len(report)).
		Str("format", string(format)).
		Msg("status report rendered")
	return StatusResult{Report: report, Rendered: rendered}, nil
}

func newArchiveAdapter(req StatusRequest) (ports.ArchivePort, error) {
	architecture := strings.ToLower(strings.TrimSpace(req.Architecture))
	backend := strings.ToLower(strings.TrimSpace(req.ArchiveBackend))
	if backend == "" {
		backend = "launchpad"
	}
	switch backend {
	case "launchpad":
		return adapters.NewLaunchpadAdapter(req.LaunchpadURL, architecture, req.HTTPTimeoutSec, req.HTTPRetries, req.HTTPRetryDelayMs), nil
	case "mirror":
		if architecture == adapters.SourceArchitecture {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("source architecture requires the launchpad backend")
		}
		return adapters.NewMirrorAdapter(req.MirrorURL, req.MirrorComponents, architecture, req.MirrorUser, req.MirrorAPIKey, req.HTTPTimeoutSec, req.HTTPRetries, req.HTTPRetryDelayMs), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported archive backend")
	}
}

func countCombinations(watchlist types.Watchlist) int {
	total := 0
	for _, entry := range watchlist.Packages {
		total += len(entry.Series) * len(entry.Pockets)
	}
	return total
}
