package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default planboard data directory name (relative to home).
	DefaultDataDir = ".planboard"
	// DBFile is the SQLite database filename.
	DBFile = "planboard.db"
	// EnvPrefix is the prefix of the environment variables of the CLI flags.
	EnvPrefix = "PLANBOARD"
)

// DBPath returns the default database path under a home directory.
func DBPath(home string) string {
	return filepath.Join(home, DefaultDataDir, DBFile)
}
