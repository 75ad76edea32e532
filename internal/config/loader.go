package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultPath is read when CONFIG_PATH is unset and the file exists.
const defaultPath = "./config.yaml"

// Load builds the configuration from an optional YAML file and the
// environment, then validates it. ENV wins over YAML, which wins over the
// env-default tags.
//
// CONFIG_PATH names the file. When it is set the file must exist; when it is
// not, ./config.yaml is used if present and ENV alone otherwise.
func Load() (*Config, error) {
	var cfg Config

	path, explicit := os.LookupEnv("CONFIG_PATH")
	explicit = explicit && path != ""
	if !explicit {
		path = defaultPath
	}

	err := readFile(path, &cfg)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	default:
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config: file %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}
