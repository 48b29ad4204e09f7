package config

import (
	"os"
	"path/filepath"
)

// defaultSQLitePath places the state file under the user config dir, falling back
// to the working directory.
func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "selectctl.db"
	}
	return filepath.Join(dir, "selectctl", "state.db")
}
