package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ubuntu-package-status/internal/ports"
	"ubuntu-package-status/internal/shared"
	"ubuntu-package-status/internal/types"
)

const DefaultLaunchpadURL = "https://api.launchpad.net/devel"
const DefaultArchitecture = "amd64"

// SourceArchitecture selects source package publications instead of
// binaries.
const SourceArchitecture = "source"

// LaunchpadAdapter queries the Launchpad REST API for the publishing
// history of the primary Ubuntu archive.  One request is issued per
// package/series/pocket combination; the API is anonymous.
type LaunchpadAdapter struct {
	BaseURL      string
	Architecture string
	Timeout      time.Duration
	Retries      int
	RetryDelay   time.Duration
}

func NewLaunchpadAdapter(baseURL string, architecture string, timeoutSec int, retries int, retryDelayMs int) LaunchpadAdapter {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultLaunchpadURL
	}
	arch := strings.ToLower(strings.TrimSpace(architecture))
	if arch == "" {
		arch = DefaultArchitecture
	}
	cfg := normalizeHTTPConfig(timeoutSec, retries, retryDelayMs)
	return LaunchpadAdapter{
		BaseURL:      base,
		Architecture: arch,
		Timeout:      cfg.timeout,
		Retries:      cfg.retries,
		RetryDelay:   cfg.baseDelay,
	}
}

// launchpadEntry mirrors the publishing-history fields this tool reads
// from a Launchpad collection entry.  Binary and source operations
// share the shape with different field names populated.
type launchpadEntry struct {
	BinaryPackageName    string `json:"binary_package_name"`
	BinaryPackageVersion string `json:"binary_package_version"`
	SourcePackageName    string `json:"source_package_name"`
	SourcePackageVersion string `json:"source_package_version"`
	ComponentName        string `json:"component_name"`
	DatePublished        string `json:"date_published"`
	Pocket               string `json:"pocket"`
	Status               string `json:"status"`
}

type launchpadPage struct {
	Entries   []launchpadEntry `json:"entries"`
	Start     int              `json:"start"`
	TotalSize int              `json:"total_size"`
}

func (a LaunchpadAdapter) FetchPublications(ctx context.Context, query ports.PublicationQuery) ([]types.Publication, error) {
	requestURL := a.buildURL(query)
	resp, err := archiveGet(ctx, requestURL, "", "", a.retryConfig())
	if err != nil {
		return nil, a.lookupError(query, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, a.lookupError(query, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch launchpad publications").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, requestURL, strings.TrimSpace(string(body)))))
	}
	var page launchpadPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, a.lookupError(query, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode launchpad response").
			WithCause(err))
	}
	publications := make([]types.Publication, 0, len(page.Entries))
	for _, entry := range page.Entries {
		publications = append(publications, types.Publication{
			Package:       entry.packageName(query.Package),
			Version:       entry.packageVersion(),
			Series:        query.Series,
			Pocket:        query.Pocket,
			Component:     entry.ComponentName,
			DatePublished: parsePublishedDate(entry.DatePublished),
		})
	}
	log.Debug().
		Str("package", query.Package).
		Str("series", query.Series).
		Str("pocket", string(query.Pocket)).
		Int("publications", len(publications)).
		Msg("launchpad lookup done")
	return publications, nil
}

// buildURL assembles the publishing-history operation URL.  Binary
// lookups pin the exact distro_arch_series; source lookups only need
// the distro_series.
func (a LaunchpadAdapter) buildURL(query ports.PublicationQuery) string {
	values := url.Values{}
	if a.Architecture == SourceArchitecture {
		values.Set("ws.op", "getPublishedSources")
		values.Set("source_name", query.Package)
		values.Set("distro_series", fmt.Sprintf("%s/ubuntu/%s", a.BaseURL, query.Series))
	} else {
		values.Set("ws.op", "getPublishedBinaries")
		values.Set("binary_name", query.Package)
		values.Set("distro_arch_series", fmt.Sprintf("%s/ubuntu/%s/%s", a.BaseURL, query.Series, a.Architecture))
	}
	values.Set("exact_match", "true")
	values.Set("pocket", query.Pocket.Title())
	values.Set("status", "Published")
	values.Set("order_by_date", "true")
	return fmt.Sprintf("%s/ubuntu/+archive/primary?%s", a.BaseURL, values.Encode())
}

func (a LaunchpadAdapter) lookupError(query ports.PublicationQuery, err error) error {
	return &types.LookupError{
		Package: query.Package,
		Series:  query.Series,
		Pocket:  query.Pocket,
		Err:     err,
	}
}

func (a LaunchpadAdapter) retryConfig() httpRetryConfig {
	return httpRetryConfig{
		timeout:   a.Timeout,
		retries:   a.Retries,
		baseDelay: a.RetryDelay,
	}
}

func (e launchpadEntry) packageName(fallback string) string {
	if e.BinaryPackageName != "" {
		return e.BinaryPackageName
	}
	if e.SourcePackageName != "" {
		return e.SourcePackageName
	}
	return fallback
}

func (e launchpadEntry) packageVersion() string {
	if e.BinaryPackageVersion != "" {
		return e.BinaryPackageVersion
	}
	return e.SourcePackageVersion
}

var _ ports.ArchivePort = LaunchpadAdapter{}
