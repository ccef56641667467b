package types

import "strings"

type Pocket string

const (
	PocketRelease   Pocket = "release"
	PocketProposed  Pocket = "proposed"
	PocketSecurity  Pocket = "security"
	PocketUpdates   Pocket = "updates"
	PocketBackports Pocket = "backports"
)

// Title returns the pocket name as the Launchpad API spells it
// ("Release", "Security", ...).
func (p Pocket) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[0:1])) + string(p[1:])
}

// Suite returns the archive suite for a series/pocket pair: the bare
// series for the release pocket, "<series>-<pocket>" for the rest.
func (p Pocket) Suite(series string) string {
	if p == PocketRelease {
		return series
	}
	return series + "-" + string(p)
}

type OutputFormat string

const (
	OutputFormatTXT  OutputFormat = "txt"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatCSV  OutputFormat = "csv"
)
