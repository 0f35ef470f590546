// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv populates cfg from the process environment using the `env` and
// `envPrefix` tags of [StructuredConfig].
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// parseDotEnv reads a .env file without touching the process environment and
// maps it onto a [StructuredConfig] with the same tags as parseEnv. A missing
// file yields a nil config and no error.
func parseDotEnv(path string) (*StructuredConfig, error) {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading dotenv file %q: %w", path, err)
	}

	cfg := &StructuredConfig{}
	if err = env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("error getting dotenv configs: %w", err)
	}

	return cfg, nil
}
