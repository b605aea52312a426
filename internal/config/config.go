package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/goliatone/go-bdfrgen/pkg/logging"
)

const (
	// DefaultCommandPrefix is the downloader invocation shown in previews.
	DefaultCommandPrefix = "python3 -m bdfr download"
	// DefaultWrapWidth is the tooltip wrap width used by listings.
	DefaultWrapWidth = 60
	// DefaultLogLevel keeps the CLI quiet unless asked.
	DefaultLogLevel = "warn"
)

// Environment variables overriding file settings.
const (
	EnvMetadataDir   = "BDFRG_METADATA_DIR"
	EnvProfileDir    = "BDFRG_PROFILE_DIR"
	EnvLogLevel      = "BDFRG_LOG_LEVEL"
	EnvCommandPrefix = "BDFRG_COMMAND_PREFIX"
)

// Config holds the application settings.
type Config struct {
	MetadataDir   string `toml:"metadata_dir"`
	ProfileDir    string `toml:"profile_dir"`
	LogLevel      string `toml:"log_level"`
	CommandPrefix string `toml:"command_prefix"`
	WrapWidth     int    `toml:"wrap_width"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel:      DefaultLogLevel,
		CommandPrefix: DefaultCommandPrefix,
		WrapWidth:     DefaultWrapWidth,
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bdfrg"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields Default() with environment overrides applied.
// An error is returned only when the file exists but is invalid.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return applyEnv(cfg, os.LookupEnv)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	return applyEnv(cfg, os.LookupEnv)
}

type lookupFunc func(string) (string, bool)

// applyEnv overlays non-empty environment values onto cfg.
func applyEnv(cfg Config, lookup lookupFunc) (Config, error) {
	for name, dst := range map[string]*string{
		EnvMetadataDir:   &cfg.MetadataDir,
		EnvProfileDir:    &cfg.ProfileDir,
		EnvLogLevel:      &cfg.LogLevel,
		EnvCommandPrefix: &cfg.CommandPrefix,
	} {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	return finalize(cfg)
}

func finalize(cfg Config) (Config, error) {
	if err := ValidatePath(cfg.MetadataDir, "metadata_dir"); err != nil {
		return Default(), err
	}
	if err := ValidatePath(cfg.ProfileDir, "profile_dir"); err != nil {
		return Default(), err
	}
	if !validLevel(cfg.LogLevel) {
		return Default(), fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", cfg.LogLevel)
	}
	if cfg.WrapWidth < 0 {
		return Default(), fmt.Errorf("invalid wrap_width %d: must not be negative", cfg.WrapWidth)
	}

	var err error
	if cfg.MetadataDir, err = expandPath(cfg.MetadataDir); err != nil {
		return Default(), fmt.Errorf("expand metadata_dir: %w", err)
	}
	if cfg.ProfileDir, err = expandPath(cfg.ProfileDir); err != nil {
		return Default(), fmt.Errorf("expand profile_dir: %w", err)
	}
	if cfg.ProfileDir == "" {
		if dir, err := baseDir(); err == nil {
			cfg.ProfileDir = filepath.Join(dir, "profiles")
		}
	}
	if cfg.WrapWidth == 0 {
		cfg.WrapWidth = DefaultWrapWidth
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg, nil
}

func validLevel(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	switch logging.Level(strings.ToLower(strings.TrimSpace(raw))) {
	case logging.DebugLevel, logging.InfoLevel, logging.WarnLevel, logging.ErrorLevel, "warning":
		return true
	}
	return false
}

// ProfilePath returns the file backing a named profile.
func (c Config) ProfilePath(name string) string {
	return filepath.Join(c.ProfileDir, name+".toml")
}

// ValidatePath checks that the path is absolute or starts with ~.
func ValidatePath(path, fieldName string) error {
	if path == "" || path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}
