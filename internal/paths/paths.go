// Package paths provides sudo-aware path resolution for msgfilter.
//
// When running with sudo, these functions resolve paths to the original
// user's directories (via SUDO_USER) instead of root's directories.
package paths

import (
	"os"
	"os/user"
	"path/filepath"
)

// UserHomeDir returns the home directory of the actual user.
// If running with sudo, returns the SUDO_USER's home directory, not root's.
func UserHomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		u, err := user.Lookup(sudoUser)
		if err == nil {
			return u.HomeDir, nil
		}
		// Fall through if lookup fails
	}

	return os.UserHomeDir()
}

// UserConfigDir returns the config directory of the actual user.
// On Linux this is typically ~/.config
func UserConfigDir() (string, error) {
	homeDir, err := UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config"), nil
}

// MsgfilterDir returns the msgfilter config directory.
// This is ~/.config/msgfilter for the actual user.
func MsgfilterDir() (string, error) {
	configDir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "msgfilter"), nil
}

// ConfigPath returns the path to the msgfilter config file.
// This is ~/.config/msgfilter/config.toml for the actual user.
func ConfigPath() (string, error) {
	dir, err := MsgfilterDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the default path to the run log.
// This is ~/.config/msgfilter/logs/msgfilter.log for the actual user.
func LogPath() (string, error) {
	dir, err := MsgfilterDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "msgfilter.log"), nil
}

// ActualUser returns the actual username (not root when using sudo).
func ActualUser() string {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		return sudoUser
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
