package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/simonhull/embcue"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "embcue",
	Short: "Inspect and index embedded cue sheets",
	Long: `embcue works with audio files that carry a cue sheet inside a
metadata tag (a CUESHEET field) instead of a sibling .cue file.

It can print the playlist such a file describes, dump the raw sheet
text, and sweep whole directories into a local sqlite index for fast
querying.`,
	Version:       fmt.Sprintf("%s (commit: %s, library: %s)", version, commit, embcue.Version),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
}

// setupLogger builds the CLI logger writing human-readable output to
// stderr. level falls back to the config file value, then to info.
func setupLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}

// effectiveLogLevel prefers the --log-level flag over the config value.
func effectiveLogLevel(configLevel string) string {
	if logLevel != "" {
		return logLevel
	}
	return configLevel
}
