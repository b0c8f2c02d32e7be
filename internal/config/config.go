// Package config loads and saves the multiplexer's configuration document
// and resolves the on-disk locations it, templates, and saved states live
// under.
package config

import (
	"encoding/json"
	"log"
	"os"
)

// DefaultShell is used for new leaves when a configuration supplies none.
const DefaultShell = "bash"

// Config is the on-disk configuration document.
type Config struct {
	DefaultCommand string            `json:"defaultCommand"`
	Keybinds       map[string]string `json:"keybinds,omitempty"`
}

// DefaultKeybinds is the mapping Default (and so Load, when no
// configuration file exists) supplies.
var DefaultKeybinds = map[string]string{
	"split_vertical":   "v",
	"split_horizontal": "h",
	"resize_left":      "H",
	"resize_right":     "L",
	"resize_up":        "K",
	"resize_down":      "J",
	"swap_vertical":    "S",
	"swap_horizontal":  "s",
	"save_state":       "Ctrl+S",
	"restore_state":    "Ctrl+R",
	"focus_next":       "Tab",
	"quit":             "Ctrl+C",
}

// Default returns the configuration used when no file exists on disk.
func Default() *Config {
	keybinds := make(map[string]string, len(DefaultKeybinds))
	for k, v := range DefaultKeybinds {
		keybinds[k] = v
	}
	return &Config{DefaultCommand: DefaultShell, Keybinds: keybinds}
}

// Load reads the configuration file. A missing file is not an error: it
// yields Default(). A present but malformed file is an error.
func Load() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("config: no file at %s, using defaults", path)
			return Default(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.DefaultCommand == "" {
		cfg.DefaultCommand = DefaultShell
	}
	log.Printf("config: loaded from %s", path)
	return cfg, nil
}

// Save writes c to the configuration file, creating an owner-only
// directory and file as needed.
func (c *Config) Save() error {
	root, err := configRoot()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return err
	}

	path, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	log.Printf("config: saved to %s", path)
	return nil
}
