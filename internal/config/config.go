package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendFile     = "file"
	BackendS3       = "s3"
	BackendNATS     = "nats"
	BackendMemory   = "memory"
)

var backends = []string{BackendSQLite, BackendPostgres, BackendFile, BackendS3, BackendNATS, BackendMemory}

type Config struct {
	Backend     string     `toml:"backend"`      // PENSIONBOOK_BACKEND (default "sqlite")
	DBPath      string     `toml:"db"`           // PENSIONBOOK_DB (default ~/.pensionbook/pensionbook.db)
	PostgresURL string     `toml:"postgres_url"` // PENSIONBOOK_POSTGRES_URL (required for postgres)
	DataDir     string     `toml:"data_dir"`     // PENSIONBOOK_DATA_DIR (default ~/.pensionbook/data)
	HTTPAddr    string     `toml:"http_addr"`    // PENSIONBOOK_HTTP_ADDR (default "127.0.0.1:8765")
	LogLevel    string     `toml:"log_level"`    // PENSIONBOOK_LOG_LEVEL (default "info")
	S3          S3Config   `toml:"s3"`
	NATS        NATSConfig `toml:"nats"`
}

type S3Config struct {
	Bucket   string `toml:"bucket"`   // PENSIONBOOK_S3_BUCKET (required for s3)
	Prefix   string `toml:"prefix"`   // PENSIONBOOK_S3_PREFIX (default "pensionbook")
	Region   string `toml:"region"`   // PENSIONBOOK_S3_REGION (default "eu-central-1")
	Endpoint string `toml:"endpoint"` // PENSIONBOOK_S3_ENDPOINT (custom endpoint for MinIO)
}

type NATSConfig struct {
	URL    string `toml:"url"`    // PENSIONBOOK_NATS_URL (default "nats://127.0.0.1:4222")
	Bucket string `toml:"bucket"` // PENSIONBOOK_NATS_BUCKET (default "pensionbook")
}

// Default returns the built-in settings rooted at dir.
func Default(dir string) *Config {
	return &Config{
		Backend:  BackendSQLite,
		DBPath:   filepath.Join(dir, "pensionbook.db"),
		DataDir:  filepath.Join(dir, "data"),
		HTTPAddr: "127.0.0.1:8765",
		LogLevel: "info",
		S3: S3Config{
			Prefix: "pensionbook",
			Region: "eu-central-1",
		},
		NATS: NATSConfig{
			URL:    "nats://127.0.0.1:4222",
			Bucket: "pensionbook",
		},
	}
}

// DefaultDir returns ~/.pensionbook.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".pensionbook"), nil
}

// Load resolves defaults, then the TOML file, then the environment. The
// file is PENSIONBOOK_CONFIG or config.toml in the default directory; a
// missing file is not an error.
func Load() (*Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	path := envOrDefault("PENSIONBOOK_CONFIG", filepath.Join(dir, "config.toml"))
	return LoadFrom(dir, path)
}

// LoadFrom is Load with an explicit default directory and config file path.
func LoadFrom(dir, path string) (*Config, error) {
	c := Default(dir)
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	c.Backend = envOrDefault("PENSIONBOOK_BACKEND", c.Backend)
	c.DBPath = envOrDefault("PENSIONBOOK_DB", c.DBPath)
	c.PostgresURL = envOrDefault("PENSIONBOOK_POSTGRES_URL", c.PostgresURL)
	c.DataDir = envOrDefault("PENSIONBOOK_DATA_DIR", c.DataDir)
	c.HTTPAddr = envOrDefault("PENSIONBOOK_HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = envOrDefault("PENSIONBOOK_LOG_LEVEL", c.LogLevel)
	c.S3.Bucket = envOrDefault("PENSIONBOOK_S3_BUCKET", c.S3.Bucket)
	c.S3.Prefix = envOrDefault("PENSIONBOOK_S3_PREFIX", c.S3.Prefix)
	c.S3.Region = envOrDefault("PENSIONBOOK_S3_REGION", c.S3.Region)
	c.S3.Endpoint = envOrDefault("PENSIONBOOK_S3_ENDPOINT", c.S3.Endpoint)
	c.NATS.URL = envOrDefault("PENSIONBOOK_NATS_URL", c.NATS.URL)
	c.NATS.Bucket = envOrDefault("PENSIONBOOK_NATS_BUCKET", c.NATS.Bucket)
}

// Validate checks the backend name and the settings that backend needs.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("PENSIONBOOK_DB is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("PENSIONBOOK_POSTGRES_URL is required for the postgres backend")
		}
	case BackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("PENSIONBOOK_DATA_DIR is required for the file backend")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("PENSIONBOOK_S3_BUCKET is required for the s3 backend")
		}
	case BackendNATS:
		if c.NATS.URL == "" || c.NATS.Bucket == "" {
			return fmt.Errorf("PENSIONBOOK_NATS_URL and PENSIONBOOK_NATS_BUCKET are required for the nats backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (expected one of %s)", c.Backend, strings.Join(backends, ", "))
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("PENSIONBOOK_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
