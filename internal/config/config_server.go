package config

import (
	"fmt"
	"time"
)

// ServerConfig is the development API configuration view.
type ServerConfig struct {
	App    App
	DSN    string
	Server Server

	// SensorModel is the model name stamped on simulated readings.
	SensorModel       string
	SimulatorInterval time.Duration
}

// GetServerConfig loads the merged configuration and returns the validated
// development API view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newServerConfig(cfg)
}

func newServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		App:               cfg.App,
		DSN:               cfg.Storage.DB.DSN,
		Server:            cfg.Server,
		SensorModel:       cfg.Polling.SensorModel,
		SimulatorInterval: cfg.Workers.SimulatorInterval,
	}

	return serverCfg, serverCfg.validate()
}
