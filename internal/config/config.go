// Package config loads pagegen settings. Sources are applied in increasing
// precedence: built-in defaults, a pagegen.{yaml,json,toml} file, PAGEGEN_*
// environment variables and finally command line flags.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "pagegen"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "pagegen"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PAGEGEN"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings shared by every command.
type Config struct {
	Locale    string `mapstructure:"locale" json:"locale"`
	Currency  string `mapstructure:"currency" json:"currency"`
	LogLevel  string `mapstructure:"log_level" json:"log_level"`
	Format    string `mapstructure:"format" json:"format"`
	AssignIDs bool   `mapstructure:"assign_ids" json:"assign_ids"`
	OpenAPI   string `mapstructure:"openapi" json:"openapi,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Locale:   "en-US",
		Currency: "USD",
		LogLevel: "warn",
		Format:   FormatText,
	}
}

// Level parses LogLevel.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// Validate rejects settings no command can use.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("config: format must be %q or %q, got %q", FormatText, FormatJSON, c.Format)
	}
	if strings.TrimSpace(c.Locale) == "" {
		return errors.New("config: locale is required")
	}
	if len(strings.TrimSpace(c.Currency)) != 3 {
		return fmt.Errorf("config: currency must be an ISO 4217 code, got %q", c.Currency)
	}
	return nil
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath is used exclusively when set.
	ConfigFilePath string
	// SearchDirs are scanned for pagegen.* when ConfigFilePath is empty.
	// Defaults to the working directory.
	SearchDirs []string
	// Flags, when set, override every other source. Flag names use dashes
	// (log-level, assign-ids).
	Flags *pflag.FlagSet
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"locale":     "locale",
	"currency":   "currency",
	"log-level":  "log_level",
	"format":     "format",
	"assign-ids": "assign_ids",
	"openapi":    "openapi",
}

// Load resolves the configuration. It returns the config file used, or "" when
// none was found.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("config: load canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("locale", defaults.Locale)
	v.SetDefault("currency", defaults.Currency)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("assign_ids", defaults.AssignIDs)
	v.SetDefault("openapi", defaults.OpenAPI)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("config: read %s: %w", opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		v.SetConfigName(ConfigFileName)
		dirs := opts.SearchDirs
		if len(dirs) == 0 {
			dirs = []string{"."}
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, "", fmt.Errorf("config: read: %w", err)
			}
		} else {
			resolvedPath = v.ConfigFileUsed()
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, "", fmt.Errorf("config: bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("config: parse: %w", err)
	}
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolvedPath, nil
}
