package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// IsWindows reports whether the binary runs on Windows.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// ExpandPath expands a leading ~ and any $VAR references in path.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
