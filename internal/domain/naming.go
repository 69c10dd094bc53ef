package domain

import (
	"fmt"
	"path/filepath"
)

// DataStorePath returns the path to the JSON data file.
func DataStorePath(dataDir string) string {
	return filepath.Join(dataDir, "data.json")
}

// DatabasePath returns the path to the SQLite database file.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, "goalpost.db")
}

// ConfigPath returns the path to a config file under dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, "goalpost.toml")
}

// GlobalConfigDir returns the global config directory under configHome
// (typically $XDG_CONFIG_HOME or ~/.config).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "goalpost")
}

// GoalLogPath returns the path to a goal-specific log file.
func GoalLogPath(dataDir string, goalID int64) string {
	return filepath.Join(dataDir, "logs", fmt.Sprintf("goal-%d.log", goalID))
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "goalpost.log")
}
