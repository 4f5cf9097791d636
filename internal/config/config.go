// Package config loads typeprobe configuration.
//
// Precedence (highest to lowest): explicitly set flags > TYPEPROBE_* env
// vars > typeprobe.yaml > defaults.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable typeprobe reads.
const EnvPrefix = "TYPEPROBE_"

// Default configuration values.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultOutput    = "text"
	HistoryFileName  = ".typeprobe_history"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds all CLI configuration options.
type Config struct {
	Modules     []string `koanf:"modules"`
	Marker      string   `koanf:"marker"`
	LogLevel    string   `koanf:"log_level"`
	LogFormat   string   `koanf:"log_format"`
	Output      string   `koanf:"output"`
	HistoryFile string   `koanf:"history_file"`
	Dump        bool     `koanf:"dump"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// findConfigFile finds the config file to use.
// Priority: explicit path > typeprobe.yaml > typeprobe.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	for _, name := range []string{"typeprobe.yaml", "typeprobe.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	return ""
}

func defaults() map[string]any {
	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, HistoryFileName)
	}

	return map[string]any{
		"modules":      []string{},
		"marker":       "",
		"log_level":    DefaultLogLevel,
		"log_format":   DefaultLogFormat,
		"output":       DefaultOutput,
		"history_file": history,
		"dump":         false,
	}
}

// Load loads configuration from defaults, the config file, environment
// variables and flags. Flags are only applied when explicitly set.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// TYPEPROBE_LOG_LEVEL -> log_level; TYPEPROBE_MODULES is comma separated.
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "modules" {
			return key, splitList(value)
		}

		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}

			key := strings.ReplaceAll(f.Name, "-", "_")
			if key == "module" {
				key = "modules"
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if !slices.Contains([]string{"text", "json"}, c.LogFormat) {
		return fmt.Errorf("invalid log_format %q, expected text or json", c.LogFormat)
	}

	if !slices.Contains([]string{OutputText, OutputJSON}, c.Output) {
		return fmt.Errorf("invalid output %q, expected %s or %s", c.Output, OutputText, OutputJSON)
	}

	return nil
}

// ParseLevel parses a slog level name such as "debug" or "warn".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", s, err)
	}

	return level, nil
}

// NewLogger builds the logger described by c, writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

type configKey struct{}

type loggerKey struct{}

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from ctx, or the defaults when none is
// stored.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}

	return &Config{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Output:    DefaultOutput,
	}
}

// WithLogger stores log in ctx.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// GetLogger retrieves the logger from ctx.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}

	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
