// Package config loads talk configuration from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TALK_DATABASE_PATH.
const EnvPrefix = "TALK"

// Config is the root configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	TUI       TUIConfig       `mapstructure:"tui"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

// DatabaseConfig configures the template store.
type DatabaseConfig struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMs int    `mapstructure:"busy_timeout_ms"`
	SeedWhenEmpty bool   `mapstructure:"seed_when_empty"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
	File   string `mapstructure:"file"`
}

// ClipboardConfig configures the clipboard sink.
type ClipboardConfig struct {
	// Command overrides platform detection, e.g. "xsel --clipboard --input".
	Command string `mapstructure:"command"`
	// CopyOnGenerate copies generated text without --copy.
	CopyOnGenerate bool `mapstructure:"copy_on_generate"`
}

// TUIConfig configures the interactive form.
type TUIConfig struct {
	Theme string `mapstructure:"theme"`
}

// TemplatesConfig configures starter template discovery.
type TemplatesConfig struct {
	ProjectDir string `mapstructure:"project_dir"`
}

// DefaultConfigDir returns ~/.config/talk.
func DefaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "talk")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "talk")
	}
	return ".talk"
}

// DefaultDataDir returns the directory that holds the database.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "talk")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "talk")
	}
	return ".talk"
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:          filepath.Join(DefaultDataDir(), "talk.db"),
			BusyTimeoutMs: 5000,
			SeedWhenEmpty: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		TUI: TUIConfig{
			Theme: "default",
		},
	}
}

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in the default config directory and may be absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Database.Path = expandHome(cfg.Database.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.BusyTimeoutMs < 0 {
		return fmt.Errorf("database.busy_timeout_ms must be non-negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.busy_timeout_ms", cfg.Database.BusyTimeoutMs)
	v.SetDefault("database.seed_when_empty", cfg.Database.SeedWhenEmpty)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("clipboard.command", cfg.Clipboard.Command)
	v.SetDefault("clipboard.copy_on_generate", cfg.Clipboard.CopyOnGenerate)
	v.SetDefault("tui.theme", cfg.TUI.Theme)
	v.SetDefault("templates.project_dir", cfg.Templates.ProjectDir)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// DefaultConfigYAML is written by `talk init`.
const DefaultConfigYAML = `# talk Configuration File
#
# Values can be overridden with TALK_* environment variables,
# e.g. TALK_DATABASE_PATH or TALK_LOGGING_LEVEL.

database:
  # path: ~/.local/share/talk/talk.db
  busy_timeout_ms: 5000
  # Store the starter templates the first time the database is empty.
  seed_when_empty: true

logging:
  level: warn
  format: console
  # file: ~/.local/share/talk/talk.log

clipboard:
  # command: xsel --clipboard --input
  copy_on_generate: false

tui:
  theme: default
`
