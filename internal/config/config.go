// Package config layers defaults, an optional YAML file, CONTACTS_*
// environment variables and command-line flags into a validated Config.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/farisp123/form-app/internal/session"
	"github.com/farisp123/form-app/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. CONTACTS_STORE_BACKEND.
const EnvPrefix = "CONTACTS"

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store" json:"store"`
	Form    FormConfig    `mapstructure:"form" json:"form"`
	Sync    SyncConfig    `mapstructure:"sync" json:"sync"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// StoreConfig selects and locates the record store backend.
type StoreConfig struct {
	// Backend is one of "sqlite", "memory" or "redis".
	Backend string `mapstructure:"backend" json:"backend"`
	// Path is the SQLite database file.
	Path string `mapstructure:"path" json:"path"`
	// RedisURL is a redis:// or rediss:// connection URL.
	RedisURL string `mapstructure:"redis_url" json:"redis_url"`
	// RedisPrefix namespaces every Redis key.
	RedisPrefix string `mapstructure:"redis_prefix" json:"redis_prefix"`
}

// FormConfig bounds draft input. Zero disables a limit.
type FormConfig struct {
	NameMaxLen  int `mapstructure:"name_max_len" json:"name_max_len"`
	PhoneMaxLen int `mapstructure:"phone_max_len" json:"phone_max_len"`
}

// SyncConfig tunes the record synchronizer.
type SyncConfig struct {
	// DiscardInvalidEdit drops an incomplete edit on submit instead of
	// keeping it and reporting the missing fields.
	DiscardInvalidEdit bool `mapstructure:"discard_invalid_edit" json:"discard_invalid_edit"`
}

// LoggingConfig controls the default slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:     store.BackendSQLite,
			Path:        filepath.Join(DataDir(), "contacts.db"),
			RedisURL:    "redis://localhost:6379/0",
			RedisPrefix: "contacts",
		},
		Form: FormConfig{
			NameMaxLen:  session.DefaultLimits().NameMax,
			PhoneMaxLen: session.DefaultLimits().PhoneMax,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// New returns a viper instance carrying the defaults and environment
// bindings. Callers may bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every key with its default so that environment
// variables are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("store.backend", defaults.Store.Backend)
	v.SetDefault("store.path", defaults.Store.Path)
	v.SetDefault("store.redis_url", defaults.Store.RedisURL)
	v.SetDefault("store.redis_prefix", defaults.Store.RedisPrefix)

	v.SetDefault("form.name_max_len", defaults.Form.NameMaxLen)
	v.SetDefault("form.phone_max_len", defaults.Form.PhoneMaxLen)

	v.SetDefault("sync.discard_invalid_edit", defaults.Sync.DiscardInvalidEdit)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

// Load reads the config file into v, decodes and validates the result.
//
// An explicit file must exist. With file empty the default ConfigFile is
// read when present and silently skipped otherwise.
func Load(v *viper.Viper, file string) (*Config, error) {
	explicit := file != ""
	if !explicit {
		file = ConfigFile()
	}

	if _, err := os.Stat(file); err == nil {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
		slog.Debug("config file loaded", "path", file)
	} else if explicit {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StoreOptions converts the store section for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:     c.Store.Backend,
		Path:        c.Store.Path,
		RedisURL:    c.Store.RedisURL,
		RedisPrefix: c.Store.RedisPrefix,
	}
}

// Limits converts the form section for the session.
func (c *Config) Limits() session.Limits {
	return session.Limits{NameMax: c.Form.NameMaxLen, PhoneMax: c.Form.PhoneMaxLen}
}

// SlogLevel maps logging.level onto a slog.Level. Unknown values map to INFO.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "contacts")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".contacts"
	}
	return filepath.Join(home, ".config", "contacts")
}

// ConfigFile returns the path to the default config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the directory holding the default SQLite database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "contacts")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".contacts"
	}
	return filepath.Join(home, ".local", "share", "contacts")
}
