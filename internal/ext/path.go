package ext

import (
	"os"
	"strings"
)

// ReplaceHomeDirWithTilde shortens an absolute path under the user's home
// directory to the ~ form for display.
func ReplaceHomeDirWithTilde(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Without a resolvable home dir the full path is shown as-is
		return path
	}

	if strings.HasPrefix(path, homeDir) {
		return "~" + strings.TrimPrefix(path, homeDir)
	}
	return path
}
