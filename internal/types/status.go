package types

import (
	"fmt"
	"time"
)

// Publication is one published binary or source record as reported by
// an archive backend.
type Publication struct {
	Package       string
	Version       string
	Series        string
	Pocket        Pocket
	Component     string
	DatePublished time.Time
}

// PackageStatusRecord is the reported status of one
// package/series/pocket combination.  Version, Component and
// DatePublished stay empty when Found is false; Error carries the
// lookup failure marker when the combination could not be queried.
type PackageStatusRecord struct {
	Package       string `json:"package"`
	Series        string `json:"series"`
	Pocket        string `json:"pocket"`
	Version       string `json:"version,omitempty"`
	Component     string `json:"component,omitempty"`
	DatePublished string `json:"date_published,omitempty"`
	Found         bool   `json:"found"`
	Error         string `json:"error,omitempty"`
}

// StatusReport holds one record per queried combination, in watchlist
// order.
type StatusReport []PackageStatusRecord

// LookupError marks a recoverable archive lookup failure for a single
// package/series/pocket combination.  The aggregator converts it into
// a found=false record instead of aborting the run.
type LookupError struct {
	Package string
	Series  string
	Pocket  Pocket
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s %s/%s: %v", e.Package, e.Series, e.Pocket, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
