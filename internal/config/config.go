package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "todolist"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultSlotDir        = "slots"
	DefaultSlot           = "todoTasks"
	DefaultRemovalDelay   = 300 * time.Millisecond
)

type Keymap struct {
	Quit         string `toml:"quit"`
	Add          string `toml:"add"`
	Up           string `toml:"up"`
	Down         string `toml:"down"`
	Toggle       string `toml:"toggle"`
	Delete       string `toml:"delete"`
	Edit         string `toml:"edit"`
	Confirm      string `toml:"confirm"`
	Cancel       string `toml:"cancel"`
	ClearDone    string `toml:"clear_completed"`
	CycleFilter  string `toml:"cycle_filter"`
	FilterAll    string `toml:"filter_all"`
	FilterActive string `toml:"filter_pending"`
	FilterDone   string `toml:"filter_completed"`
}

type Storage struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
	Slot    string `toml:"slot"`
}

type Config struct {
	Storage       Storage `toml:"storage"`
	DefaultFilter string  `toml:"default_filter"`
	RemovalDelay  string  `toml:"removal_delay"`
	LogPath       string  `toml:"log_path"`
	Keys          Keymap  `toml:"keys"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/todolist/config.toml, falling
// back to ~/.config/todolist/config.toml.
func ResolveConfigPath() string {
	return filepath.Join(DefaultConfigDir(), DefaultConfigFileName)
}

func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// if the file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	cfg.Storage.Path = ""
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath(filepath.Dir(path), cfg.Storage.Backend)
	}
	if cfg.Storage.Slot == "" {
		cfg.Storage.Slot = DefaultSlot
	}
	return cfg, nil
}

// Delay parses RemovalDelay, falling back to the default on blank or
// unparsable values. Negative delays are clamped to zero.
func (c Config) Delay() time.Duration {
	if c.RemovalDelay == "" {
		return DefaultRemovalDelay
	}
	d, err := time.ParseDuration(c.RemovalDelay)
	if err != nil {
		return DefaultRemovalDelay
	}
	if d < 0 {
		return 0
	}
	return d
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultStoragePath is where a backend keeps its data when the config
// names no path: a database file for sqlite, a directory for file.
func DefaultStoragePath(dir, backend string) string {
	switch strings.ToLower(backend) {
	case "file":
		return filepath.Join(dir, DefaultSlotDir)
	case "memory":
		return ""
	default:
		return filepath.Join(dir, DefaultDBName)
	}
}

// Default returns the built-in configuration with storage rooted at dir.
func Default(dir string) Config {
	return Config{
		Storage: Storage{
			Backend: "sqlite",
			Path:    filepath.Join(dir, DefaultDBName),
			Slot:    DefaultSlot,
		},
		DefaultFilter: "all",
		RemovalDelay:  DefaultRemovalDelay.String(),
		Keys: Keymap{
			Quit:         "q",
			Add:          "a",
			Up:           "k",
			Down:         "j",
			Toggle:       " ",
			Delete:       "d",
			Edit:         "e",
			Confirm:      "enter",
			Cancel:       "esc",
			ClearDone:    "c",
			CycleFilter:  "f",
			FilterAll:    "1",
			FilterActive: "2",
			FilterDone:   "3",
		},
	}
}
