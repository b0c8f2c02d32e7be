package config

import (
	"os"
	"path/filepath"
)

const dirName = "pudding"

// configRoot resolves the pudding configuration directory: XDG_CONFIG_HOME
// if set, else $HOME/.config, else the OS's notion of a user config
// directory.
func configRoot() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, dirName), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", dirName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, dirName), nil
}

func configFilePath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "config.json"), nil
}

// TemplatesDir returns the directory templates are stored in.
func TemplatesDir() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "templates"), nil
}

// StatesDir returns the directory saved states are stored in.
func StatesDir() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "states"), nil
}
