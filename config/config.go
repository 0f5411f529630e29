package config

import (
	"os"
	"path/filepath"

	"runer/store"
)

const (
	AppName = "runer"
	Version = "0.1.0"
)

// Config holds settings resolved from command-line flags.
type Config struct {
	StoreFile      string
	HistoryPath    string
	HistoryEnabled bool
}

// Default returns the settings used when no flags are given.
func Default() Config {
	return Config{
		StoreFile:      store.DefaultFile,
		HistoryPath:    DefaultHistoryPath(),
		HistoryEnabled: true,
	}
}

// DefaultHistoryPath is ~/.runer/history.db, or a temp-dir path if the
// home directory cannot be determined.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "."+AppName, "history.db")
	}
	return filepath.Join(home, "."+AppName, "history.db")
}
