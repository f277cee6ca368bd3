package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/luca-patrignani/hashchain/ledger"
)

// Config represents the application configuration
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// LedgerConfig selects the hash function and the genesis payload
type LedgerConfig struct {
	Digest  string `yaml:"digest"`
	Genesis string `yaml:"genesis"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Default returns the configuration used when no file or environment
// variable overrides a setting.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Digest:  ledger.SHA256.Name,
			Genesis: "genesis block",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// Load reads the YAML file at path, if it exists, on top of the defaults and
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadEnv() {
	if digest := os.Getenv("HASHCHAIN_DIGEST"); digest != "" {
		c.Ledger.Digest = digest
	}
	if genesis, ok := os.LookupEnv("HASHCHAIN_GENESIS"); ok {
		c.Ledger.Genesis = genesis
	}
	if level := os.Getenv("HASHCHAIN_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
}

// Validate rejects settings the program cannot run with.
func (c *Config) Validate() error {
	if _, err := ledger.DigestByName(c.Ledger.Digest); err != nil {
		return fmt.Errorf("invalid ledger.digest: %w (available: %s)", err, strings.Join(ledger.DigestNames(), ", "))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	return nil
}

// Digest resolves the configured digest name.
func (c *Config) Digest() (ledger.Digest, error) {
	return ledger.DigestByName(c.Ledger.Digest)
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", l.Level, err)
	}
	return level, nil
}
