// Package paths resolves the configuration directory that holds
// config.yaml and the data directory that holds imported SQLite databases.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user directories.
const appName = "biasmetrics"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "BIASMETRICS_CONFIG_DIR"
	EnvDataDir   = "BIASMETRICS_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// userDir returns the per-user directory for the application. On Linux it
// honours the XDG variable xdgEnv and otherwise falls back to
// ~/<linuxFallback...>/biasmetrics. Other platforms use os.UserConfigDir,
// which is ~/Library/Application Support on macOS and %APPDATA% on Windows.
func userDir(xdgEnv string, linuxFallback ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, linuxFallback...)
	return filepath.Join(append(parts, appName)...), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/biasmetrics (fallback ~/.config/biasmetrics)
// macOS:   ~/Library/Application Support/biasmetrics
// Windows: %APPDATA%/biasmetrics
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/biasmetrics (fallback ~/.local/share/biasmetrics)
// macOS and Windows: same as the config directory.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > BIASMETRICS_CONFIG_DIR env > DefaultConfigDir().
// Explicit values are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	return resolve(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > BIASMETRICS_DATA_DIR env > DefaultDataDir().
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	return resolve(DefaultDataDir, flag, configYAMLValue, os.Getenv(EnvDataDir))
}

// resolve returns the first non-empty candidate as an absolute path, or the
// platform default.
func resolve(def func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return def()
}
