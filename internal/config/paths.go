package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableDir returns the directory where the current executable resides,
// falling back to the working directory.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err == nil && strings.TrimSpace(exe) != "" {
		if resolved, resolveErr := filepath.EvalSymlinks(exe); resolveErr == nil && strings.TrimSpace(resolved) != "" {
			exe = resolved
		}
		return filepath.Dir(exe)
	}

	if wd, wdErr := os.Getwd(); wdErr == nil && strings.TrimSpace(wd) != "" {
		return wd
	}
	return "."
}

// ResolveRuntimePath resolves a runtime file or directory against the executable
// directory. SQLite URIs (file:..., :memory:) are returned untouched.
func ResolveRuntimePath(raw string, fallback string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(fallback)
		if target == "" {
			return ExecutableDir()
		}
	}
	if target == ":memory:" || strings.HasPrefix(target, "file:") {
		return target
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(ExecutableDir(), target))
}
