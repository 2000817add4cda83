// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// When neither is given the registry runs on defaults (dev logging, JSON
// storage in ./data.json). Individual values can still be overridden
// through the environment variables named in the env:"..." tags.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backends accepted in storage.backend.
const (
	BackendJSON   = "json"
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file and can be overridden by the
// corresponding environment variable.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	// SkipSeed disables the example resident and apartment added at startup.
	SkipSeed bool `yaml:"skip_seed" env:"SKIP_SEED"`

	Storage Storage `yaml:"storage"`
}

// Storage selects where the registry is saved to and loaded from.
type Storage struct {
	// Backend is one of BackendJSON, BackendCSV, BackendSQLite.
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"json" validate:"oneof=json csv sqlite"`

	// Path is the JSON file, the directory holding the CSV files, or the
	// SQLite .db file, depending on Backend.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"data.json" validate:"required"`
}

// MustLoad reads and returns the application config, exiting the process
// if a config file was named but cannot be read.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}
	return cfg
}

// Load reads configPath, or only the environment when configPath is "".
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
	} else {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
		// ReadConfig parses the YAML file, then applies env overrides and
		// env-default values.
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", configPath, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: validate: %w", err)
	}
	return &cfg, nil
}
