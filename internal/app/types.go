package app

import "ubuntu-package-status/internal/types"

type StatusRequest struct {
	ConfigPath       string
	OutputFormat     string
	Architecture     string
	ArchiveBackend   string
	LaunchpadURL     string
	MirrorURL        string
	MirrorComponents []string
	MirrorUser       string
	MirrorAPIKey     string
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
	Progress         bool
}

type StatusResult struct {
	Report   types.StatusReport
	Rendered string
}
