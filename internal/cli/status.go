package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ubuntu-package-status/internal/app"
)

type statusOptions struct {
	Config           string
	LoggingLevel     string
	OutputFormat     string
	ConfigSkeleton   bool
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

func registerStatusFlags(cmd *cobra.Command, opts *statusOptions) {
	cmd.PersistentFlags().StringVar(&opts.LoggingLevel, "logging-level", "ERROR", "Logging level: DEBUG, INFO, WARNING or ERROR")
	cmd.Flags().StringVar(&opts.Config, "config", "", "Watchlist config file path")
	cmd.Flags().StringVar(&opts.OutputFormat, "output-format", "txt", "Output format: txt, json or csv")
	cmd.Flags().BoolVar(&opts.ConfigSkeleton, "config-skeleton", false, "Print a watchlist config template and exit")
	cmd.Flags().StringVar(&opts.Architecture, "package-architecture", "amd64", "Package architecture (source selects source packages)")
	cmd.Flags().StringVar(&opts.ArchiveBackend, "archive-backend", "launchpad", "Archive backend: launchpad or mirror")
	cmd.Flags().StringVar(&opts.LaunchpadURL, "launchpad-url", "https://api.launchpad.net/devel", "Launchpad API base URL")
	cmd.Flags().StringVar(&opts.MirrorURL, "mirror-url", "http://archive.ubuntu.com/ubuntu", "Ubuntu mirror base URL for the mirror backend")
	cmd.Flags().StringSliceVar(&opts.MirrorComponents, "mirror-component", []string{"main", "universe"}, "Mirror component(s) to index")
	cmd.Flags().StringVar(&opts.MirrorUser, "mirror-user", "", "Mirror basic auth user (defaults to api)")
	cmd.Flags().StringVar(&opts.MirrorAPIKey, "mirror-api-key", "", "Mirror basic auth password/API key")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 60, "HTTP timeout in seconds (0 = default)")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 3, "HTTP retries (0 = default)")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 200, "HTTP retry base delay in ms (0 = default)")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "Show a progress bar on stderr while querying")

	_ = viper.BindPFlag("logging_level", cmd.PersistentFlags().Lookup("logging-level"))
	_ = viper.BindPFlag("config", cmd.Flags().Lookup("config"))
	_ = viper.BindPFlag("output_format", cmd.Flags().Lookup("output-format"))
	_ = viper.BindPFlag("config_skeleton", cmd.Flags().Lookup("config-skeleton"))
	_ = viper.BindPFlag("package_architecture", cmd.Flags().Lookup("package-architecture"))
	_ = viper.BindPFlag("archive_backend", cmd.Flags().Lookup("archive-backend"))
	_ = viper.BindPFlag("launchpad_url", cmd.Flags().Lookup("launchpad-url"))
	_ = viper.BindPFlag("mirror_url", cmd.Flags().Lookup("mirror-url"))
	_ = viper.BindPFlag("mirror_components", cmd.Flags().Lookup("mirror-component"))
	_ = viper.BindPFlag("mirror_user", cmd.Flags().Lookup("mirror-user"))
	_ = viper.BindPFlag("mirror_api_key", cmd.Flags().Lookup("mirror-api-key"))
	_ = viper.BindPFlag("http_timeout_sec", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", cmd.Flags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", cmd.Flags().Lookup("http-retry-delay-ms"))
	_ = viper.BindPFlag("progress", cmd.Flags().Lookup("progress"))
}

func runStatus(ctx context.Context, cmd *cobra.Command, opts statusOptions) error {
	service := newAppService()
	if resolveBool(cmd, opts.ConfigSkeleton, "config_skeleton", "config-skeleton") {
		skeleton, err := service.Skeleton()
		if err != nil {
			return err
		}
		fmt.Print(skeleton)
		return nil
	}
	result, err := service.Status(ctx, app.StatusRequest{
		ConfigPath:       resolveString(cmd, opts.Config, "config", "config"),
		OutputFormat:     resolveString(cmd, opts.OutputFormat, "output_format", "output-format"),
		Architecture:     resolveString(cmd, opts.Architecture, "package_architecture", "package-architecture"),
		ArchiveBackend:   resolveString(cmd, opts.ArchiveBackend, "archive_backend", "archive-backend"),
		LaunchpadURL:     resolveString(cmd, opts.LaunchpadURL, "launchpad_url", "launchpad-url"),
		MirrorURL:        resolveString(cmd, opts.MirrorURL, "mirror_url", "mirror-url"),
		MirrorComponents: resolveStrings(cmd, opts.MirrorComponents, "mirror_components", "mirror-component"),
		MirrorUser:       resolveString(cmd, opts.MirrorUser, "mirror_user", "mirror-user"),
		MirrorAPIKey:     resolveString(cmd, opts.MirrorAPIKey, "mirror_api_key", "mirror-api-key"),
		HTTPTimeoutSec:   resolveInt(cmd, opts.HTTPTimeoutSec, "http_timeout_sec", "http-timeout"),
		HTTPRetries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
		HTTPRetryDelayMs: resolveInt(cmd, opts.HTTPRetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
		Progress:         resolveBool(cmd, opts.Progress, "progress", "progress"),
	})
	if err != nil {
		return err
	}
	fmt.Print(result.Rendered)
	return nil
}

func newAppService() app.Service {
	return app.NewService()
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
