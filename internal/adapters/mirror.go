package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"pault.ag/go/archive"
	"pault.ag/go/debian/deb"

	"ubuntu-package-status/internal/ports"
	"ubuntu-package-status/internal/shared"
	"ubuntu-package-status/internal/types"
)

const DefaultMirrorURL = "http://archive.ubuntu.com/ubuntu"

var defaultMirrorComponents = []string{"main", "universe"}

// mirrorIndex maps package names to their stanzas in one Packages
// index.
type mirrorIndex map[string][]archive.Package

// MirrorAdapter answers publication queries from a plain Ubuntu archive
// mirror by downloading dists/<suite>/<component>/binary-<arch>/Packages
// indices.  Indices are cached per suite and component, so a watchlist
// touching the same series repeatedly costs a single download.
type MirrorAdapter struct {
	BaseURL      string
	Components   []string
	Architecture string
	Username     string
	APIKey       string
	Timeout      time.Duration
	Retries      int
	RetryDelay   time.Duration

	mu    sync.Mutex
	cache map[string]mirrorIndex
}

func NewMirrorAdapter(baseURL string, components []string, architecture string, username string, apiKey string, timeoutSec int, retries int, retryDelayMs int) *MirrorAdapter {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultMirrorURL
	}
	arch := strings.ToLower(strings.TrimSpace(architecture))
	if arch == "" {
		arch = DefaultArchitecture
	}
	normalized := make([]string, 0, len(components))
	for _, component := range components {
		trimmed := strings.TrimSpace(component)
		if trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	if len(normalized) == 0 {
		normalized = append(normalized, defaultMirrorComponents...)
	}
	cfg := normalizeHTTPConfig(timeoutSec, retries, retryDelayMs)
	return &MirrorAdapter{
		BaseURL:      base,
		Components:   normalized,
		Architecture: arch,
		Username:     username,
		APIKey:       apiKey,
		Timeout:      cfg.timeout,
		Retries:      cfg.retries,
		RetryDelay:   cfg.baseDelay,
		cache:        map[string]mirrorIndex{},
	}
}

func (a *MirrorAdapter) FetchPublications(ctx context.Context, query ports.PublicationQuery) ([]types.Publication, error) {
	suite := query.Pocket.Suite(query.Series)
	var publications []types.Publication
	for _, component := range a.Components {
		index, err := a.suiteIndex(ctx, suite, component)
		if err != nil {
			return nil, &types.LookupError{
				Package: query.Package,
				Series:  query.Series,
				Pocket:  query.Pocket,
				Err:     err,
			}
		}
		for _, pkg := range index[query.Package] {
			publications = append(publications, types.Publication{
				Package:   pkg.Package,
				Version:   pkg.Version.String(),
				Series:    query.Series,
				Pocket:    query.Pocket,
				Component: component,
			})
		}
	}
	log.Debug().
		Str("package", query.Package).
		Str("suite", suite).
		Int("publications", len(publications)).
		Msg("mirror lookup done")
	return publications, nil
}

func (a *MirrorAdapter) suiteIndex(ctx context.Context, suite string, component string) (mirrorIndex, error) {
	key := suite + "/" + component
	a.mu.Lock()
	index, ok := a.cache[key]
	a.mu.Unlock()
	if ok {
		return index, nil
	}
	index, err := a.fetchSuiteIndex(ctx, suite, component)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.cache[key] = index
	a.mu.Unlock()
	return index, nil
}

// fetchSuiteIndex downloads one Packages index, preferring the gzipped
// form and falling back to the plain file.  A suite missing both forms
// yields an empty index: proposed and backports pockets regularly
// carry no content for a component.
func (a *MirrorAdapter) fetchSuiteIndex(ctx context.Context, suite string, component string) (mirrorIndex, error) {
	gzURL := fmt.Sprintf("%s/dists/%s/%s/binary-%s/Packages.gz", a.BaseURL, suite, component, a.Architecture)
	index, notFound, err := a.fetchPackages(ctx, gzURL)
	if err != nil {
		return nil, err
	}
	if notFound {
		plainURL := fmt.Sprintf("%s/dists/%s/%s/binary-%s/Packages", a.BaseURL, suite, component, a.Architecture)
		index, notFound, err = a.fetchPackages(ctx, plainURL)
		if err != nil {
			return nil, err
		}
		if notFound {
			log.Debug().Str("suite", suite).Str("component", component).Msg("packages index missing, treating as empty")
			return mirrorIndex{}, nil
		}
	}
	return index, nil
}

func (a *MirrorAdapter) fetchPackages(ctx context.Context, indexURL string) (mirrorIndex, bool, error) {
	resp, err := archiveGet(ctx, indexURL, a.Username, a.APIKey, a.retryConfig())
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, true, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch packages index").
			WithCause(shared.HTTPStatusError(resp.StatusCode, indexURL))
	}
	var reader io.Reader = resp.Body
	if strings.HasSuffix(indexURL, ".gz") {
		decompress := deb.DecompressorFor(".gz")
		gz, err := decompress(resp.Body)
		if err != nil {
			return nil, false, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to decompress packages index").
				WithCause(err)
		}
		defer gz.Close()
		reader = gz
	}
	index, err := loadPackagesIndex(reader)
	if err != nil {
		return nil, false, err
	}
	return index, false, nil
}

func loadPackagesIndex(reader io.Reader) (mirrorIndex, error) {
	db, err := archive.LoadPackages(reader)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse packages index").
			WithCause(err)
	}
	packages, err := db.Map(func(p *archive.Package) bool { return true })
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read packages index").
			WithCause(err)
	}
	index := mirrorIndex{}
	for _, pkg := range packages {
		index[pkg.Package] = append(index[pkg.Package], pkg)
	}
	return index, nil
}

func (a *MirrorAdapter) retryConfig() httpRetryConfig {
	return httpRetryConfig{
		timeout:   a.Timeout,
		retries:   a.Retries,
		baseDelay: a.RetryDelay,
	}
}

var _ ports.ArchivePort = (*MirrorAdapter)(nil)
