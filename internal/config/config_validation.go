// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.SessionDSN == "" || strings.Contains(cfg.Storage.SessionDSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	p := cfg.Polling
	intervals := []struct {
		name  string
		value time.Duration
	}{
		{"chat", p.ChatInterval},
		{"readings", p.ReadingsInterval},
		{"radar", p.RadarInterval},
		{"chart", p.ChartInterval},
	}
	for _, iv := range intervals {
		if iv.value <= 0 {
			return fmt.Errorf("%w: %s interval must be positive", ErrInvalidPollingConfigs, iv.name)
		}
	}
	if strings.TrimSpace(p.SensorModel) == "" {
		return fmt.Errorf("%w: sensor model is empty", ErrInvalidPollingConfigs)
	}

	if cfg.Workers.BulkDeleteConcurrency < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.SimulatorInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
