// Package config resolves cardlist settings from defaults, an optional TOML file,
// and CARDLIST_* environment variables. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the effective configuration.
type Config struct {
	Dir       string    `toml:"dir" json:"dir"`
	Backend   string    `toml:"backend" json:"backend"`
	Codec     string    `toml:"codec" json:"codec"`
	Compress  bool      `toml:"compress" json:"compress"`
	LogLevel  string    `toml:"log_level" json:"logLevel"`
	LogFile   string    `toml:"log_file" json:"logFile,omitempty"`
	LogFormat string    `toml:"log_format" json:"logFormat"`
	TUI       TUIConfig `toml:"tui" json:"tui"`

	// Path is the config file that was read, if any.
	Path string `toml:"-" json:"path,omitempty"`
}

type TUIConfig struct {
	// Theme is one of: auto|light|dark
	Theme string `toml:"theme" json:"theme"`
}

// Default returns built-in settings. Dir is left empty and resolved by DefaultDataDir.
func Default() Config {
	return Config{
		Backend:   "file",
		Codec:     "cbor",
		LogLevel:  "info",
		LogFormat: "text",
		TUI:       TUIConfig{Theme: "auto"},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/cardlist/config.toml (or the OS equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "cardlist", "config.toml"), nil
}

// DefaultDataDir is ~/.cardlist.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("user home dir: %w", err)
	}
	return filepath.Join(home, ".cardlist"), nil
}

// Load reads path (or DefaultPath when empty) over the defaults and then applies the
// environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := Parse(data, &cfg); err != nil {
				return cfg, fmt.Errorf("%s: %w", path, err)
			}
			cfg.Path = path
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// Optional.
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes TOML into cfg, keeping existing values for absent keys.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides cfg with CARDLIST_* variables read through getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("CARDLIST_DIR", &cfg.Dir)
	str("CARDLIST_BACKEND", &cfg.Backend)
	str("CARDLIST_CODEC", &cfg.Codec)
	str("CARDLIST_LOG_LEVEL", &cfg.LogLevel)
	str("CARDLIST_LOG_FILE", &cfg.LogFile)
	str("CARDLIST_LOG_FORMAT", &cfg.LogFormat)
	str("CARDLIST_TUI_THEME", &cfg.TUI.Theme)

	if v := strings.TrimSpace(getenv("CARDLIST_COMPRESS")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CARDLIST_COMPRESS: %w", err)
		}
		cfg.Compress = b
	}
	return nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if err := oneOf("backend", c.Backend, "file", "sqlite", "memory"); err != nil {
		return err
	}
	if err := oneOf("codec", c.Codec, "cbor", "json"); err != nil {
		return err
	}
	if err := oneOf("log_level", c.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	if err := oneOf("log_format", c.LogFormat, "text", "json"); err != nil {
		return err
	}
	return oneOf("tui.theme", c.TUI.Theme, "auto", "light", "dark")
}

func oneOf(key, v string, allowed ...string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (want %s)", key, v, strings.Join(allowed, "|"))
}
