// Package config resolves where the phone book lives and how the tool is set up.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	AppDir        = ".gestContactApp"
	PhoneBookFile = "PhoneBook.txt"

	// DataDirEnv overrides the application directory.
	DataDirEnv = "PHONEBOOK_DIR"
)

// DefaultAppDir returns <home>/.gestContactApp.
func DefaultAppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, AppDir), nil
}

// PhoneBookPath returns the path to PhoneBook.txt inside an application directory.
func PhoneBookPath(appDir string) string {
	return filepath.Join(appDir, PhoneBookFile)
}

// ResolveAppDir picks the application directory. The PHONEBOOK_DIR
// environment variable wins, then data_dir from the global config, then the
// default under the home directory.
func ResolveAppDir(cfg *GlobalConfig) (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return ExpandPath(dir), nil
	}
	if cfg != nil && cfg.DataDir != "" {
		return ExpandPath(cfg.DataDir), nil
	}
	return DefaultAppDir()
}

// EnsureAppDir creates the application directory and any missing parents.
// It reports whether the directory had to be created.
func EnsureAppDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking application directory: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("creating application directory: %w", err)
	}
	return true, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
