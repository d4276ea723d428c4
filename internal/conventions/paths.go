package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default cline data directory name (relative to home).
	DefaultDataDir = ".cline"
	// DBFile is the SQLite database filename.
	DBFile = "cline.db"
	// ConfigFile is the assistant YAML configuration filename.
	ConfigFile = "config.yaml"
)

// DBPath returns the default database path for a home directory.
func DBPath(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir, DBFile)
}

// ConfigPath returns the default configuration file path for a home directory.
func ConfigPath(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir, ConfigFile)
}
