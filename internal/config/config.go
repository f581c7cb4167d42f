// Package config loads dashboard settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/TWRT/ops-dashboard/internal/models"
)

const (
	EnvConfigPath = "DASHBOARD_CONFIG"
	EnvAPIURL     = "DASHBOARD_API_URL"
	EnvPageSize   = "DASHBOARD_PAGE_SIZE"
	EnvAddr       = "DASHBOARD_ADDR"
	EnvDBPath     = "DASHBOARD_DB_PATH"
	EnvLogLevel   = "DASHBOARD_LOG_LEVEL"

	DefaultConfigPath = "dashboard.yaml"
)

type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Roles    RolesConfig    `yaml:"roles"`
}

type BackendConfig struct {
	URL      string        `yaml:"url"`
	PageSize int           `yaml:"page_size"`
	Timeout  time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type RolesConfig struct {
	SuperUser  string `yaml:"super_user"`
	Specialist string `yaml:"specialist"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:      "http://localhost:1337/api",
			PageSize: 1000,
			Timeout:  10 * time.Second,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			Path: "./dashboard.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Roles: RolesConfig{
			SuperUser:  string(models.RoleManager),
			Specialist: string(models.RoleSpecialist),
		},
	}
}

// Load builds the configuration. A missing .env or YAML file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := DefaultConfig()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.Backend.PageSize = n
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend url is required")
	}
	if c.Backend.PageSize <= 0 {
		return fmt.Errorf("backend page_size must be positive, got %d", c.Backend.PageSize)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}

func (c *Config) RolePolicy() models.RolePolicy {
	return models.RolePolicy{
		SuperUser:  models.NormalizeRole(c.Roles.SuperUser),
		Specialist: models.NormalizeRole(c.Roles.Specialist),
	}
}
