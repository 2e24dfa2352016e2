package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"reportengine.dev/internal/runstore"
)

// Default values for the server configuration.
const (
	DefaultPort           = 4000
	DefaultDataDir        = "runs"
	DefaultMaxUploadBytes = 5 << 20 // 5 MiB
)

// Config holds all the configuration settings for the Application: the
// network port, the operating environment (development, staging, production),
// where run artifacts live, and the upload/retention limits. Settings come
// from command-line flags, optionally overridden by a YAML config file.
type Config struct {
	Port           int
	Env            string
	DataDir        string
	Retention      time.Duration
	MaxUploadBytes int64
}

// DefaultConfig returns the built-in settings used when neither flags nor a
// config file override them.
func DefaultConfig() Config {
	return Config{
		Port:           DefaultPort,
		Env:            "development",
		DataDir:        DefaultDataDir,
		Retention:      runstore.DefaultRetention,
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// fileConfig mirrors the `server:` section of the YAML config file.
type fileConfig struct {
	Server struct {
		Port         int           `yaml:"port"`
		Env          string        `yaml:"env"`
		DataDir      string        `yaml:"data_dir"`
		Retention    time.Duration `yaml:"retention"`
		MaxUploadMiB int64         `yaml:"max_upload_mib"`
	} `yaml:"server"`
}

// LoadConfigFile applies the settings in the YAML file at path on top of
// base. Zero-valued fields in the file leave the base value untouched.
func LoadConfigFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := base
	if fc.Server.Port != 0 {
		cfg.Port = fc.Server.Port
	}
	if fc.Server.Env != "" {
		cfg.Env = fc.Server.Env
	}
	if fc.Server.DataDir != "" {
		cfg.DataDir = fc.Server.DataDir
	}
	if fc.Server.Retention != 0 {
		cfg.Retention = fc.Server.Retention
	}
	if fc.Server.MaxUploadMiB != 0 {
		cfg.MaxUploadBytes = fc.Server.MaxUploadMiB << 20
	}
	return cfg, nil
}
