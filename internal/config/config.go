// Package config loads configuration for the embcue command line tool.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds settings for the embcue CLI.
type Config struct {
	// LibraryPath is the sqlite database the scan command indexes
	// playlists into.
	LibraryPath string

	// ScanExtensions limits which files the scan command probes.
	ScanExtensions []string

	// LogLevel for CLI logging (debug, info, warn, error).
	LogLevel string
}

// Load reads configuration from file and environment.
//
// The config file is optional; defaults apply when it is missing.
// Environment variables use the EMBCUE_ prefix (EMBCUE_LOG_LEVEL etc.).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getConfigDir())
	v.AddConfigPath(".")

	v.SetDefault("library_path", filepath.Join(getDataDir(), "library.db"))
	v.SetDefault("scan_extensions", []string{
		"flac", "mp3", "mp2", "mp4", "m4a", "m4b", "ape", "wv", "ogg", "oga", "opus",
	})
	v.SetDefault("log_level", "info")

	_ = v.ReadInConfig()

	v.SetEnvPrefix("EMBCUE")
	v.AutomaticEnv()

	cfg := &Config{
		LibraryPath:    v.GetString("library_path"),
		ScanExtensions: v.GetStringSlice("scan_extensions"),
		LogLevel:       v.GetString("log_level"),
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory, creating it if
// needed.
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "embcue")
	_ = os.MkdirAll(configDir, 0755)
	return configDir
}

// getDataDir returns the data directory for the library database,
// creating it if needed.
func getDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	dataDir := filepath.Join(homeDir, ".local", "share", "embcue")
	_ = os.MkdirAll(dataDir, 0755)
	return dataDir
}
