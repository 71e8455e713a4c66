package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig locates the project document directory.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// TransportConfig selects how the MCP server speaks to clients:
// "stdio" for editor-launched processes, "http" for a shared server.
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
	}
	if base, err := os.UserConfigDir(); err == nil {
		cfg.Data.Dir = filepath.Join(base, "proofdesk", "projects")
		cfg.DB.Path = filepath.Join(base, "proofdesk", "proofdesk.db")
	} else {
		cfg.Data.Dir = "projects"
		cfg.DB.Path = "proofdesk.db"
	}

	if path := os.Getenv("PROOFDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("PROOFDESK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PROOFDESK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROOFDESK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dir := os.Getenv("PROOFDESK_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
	if dbPath := os.Getenv("PROOFDESK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("PROOFDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if mode := os.Getenv("PROOFDESK_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}

	if cfg.Transport.Mode != "stdio" && cfg.Transport.Mode != "http" {
		return Config{}, fmt.Errorf("invalid transport mode %q (want stdio or http)", cfg.Transport.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
