// Package config loads schemactl settings from defaults, a YAML file,
// SCHEMACTL_* environment variables and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/burugo/schemamgr"
)

const (
	EnvPrefix         = "SCHEMACTL_"
	DefaultConfigFile = "schemactl.yaml"
)

// Config holds all CLI configuration options.
type Config struct {
	Backend         string        `koanf:"backend"`
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	Verbose         bool          `koanf:"verbose"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	PingTimeout     time.Duration `koanf:"ping_timeout"`
}

// Load reads configuration. Precedence (highest to lowest): changed flags >
// env vars > config file > defaults. An empty cfgFile falls back to
// DefaultConfigFile when it exists.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"verbose":           false,
		"max_open_conns":    25,
		"max_idle_conns":    5,
		"conn_max_lifetime": "5m",
		"ping_timeout":      "5s",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// SCHEMACTL_MAX_OPEN_CONNS -> max_open_conns
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// DBConfig converts the CLI settings into a schemamgr.Config.
func (c *Config) DBConfig(logger *slog.Logger) (schemamgr.Config, error) {
	out := schemamgr.Config{
		Driver:          c.Driver,
		DSN:             c.DSN,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		PingTimeout:     c.PingTimeout,
		Logger:          logger,
	}
	if c.Backend == "" && c.Driver == "" {
		return out, fmt.Errorf("no backend configured: set --backend, %sBACKEND or backend in %s", EnvPrefix, DefaultConfigFile)
	}
	if c.Backend != "" {
		b, err := schemamgr.ParseBackend(c.Backend)
		if err != nil {
			return out, err
		}
		out.Backend = b
	}
	if c.DSN == "" {
		return out, fmt.Errorf("no dsn configured: set --dsn, %sDSN or dsn in %s", EnvPrefix, DefaultConfigFile)
	}
	return out, nil
}
