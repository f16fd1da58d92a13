// Package config loads grantsql configuration from file, environment
// variables, and CLI flags.
package config

// Default configuration values.
const (
	DefaultDataDir = "data"
	DefaultDBPath  = "outputs/nonprofit_grants.db"
	DefaultStore   = "sqlite"
	DefaultFormat  = "table"
)

// Config holds the resolved grantsql configuration.
type Config struct {
	// DataDir is the directory containing the source CSV extracts.
	DataDir string `koanf:"data_dir"`

	// DBPath is the path to the store file.
	DBPath string `koanf:"db_path"`

	// Store selects the store adapter (sqlite or duckdb).
	Store string `koanf:"store"`

	// Format is the default result output format (table, json, csv, md).
	Format string `koanf:"format"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}
