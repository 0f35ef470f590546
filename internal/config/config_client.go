package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds the remote API settings used by the console.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientStorage holds the session cache settings.
type ClientStorage struct {
	SessionDSN string
}

// ClientPolling holds live view refresh settings.
type ClientPolling struct {
	ChatInterval     time.Duration
	ReadingsInterval time.Duration
	RadarInterval    time.Duration
	ChartInterval    time.Duration
	SensorModel      string
}

// ClientWorkers holds console side concurrency settings.
type ClientWorkers struct {
	BulkDeleteConcurrency int
}

// ClientConfig is the console configuration view.
type ClientConfig struct {
	Version string
	Adapter ClientAdapter
	Storage ClientStorage
	Polling ClientPolling
	Workers ClientWorkers
}

// GetClientConfig loads the merged configuration and returns the validated
// console view.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		Version: cfg.App.Version,
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{SessionDSN: cfg.Storage.Session.DSN},
		Polling: ClientPolling{
			ChatInterval:     cfg.Polling.ChatInterval,
			ReadingsInterval: cfg.Polling.ReadingsInterval,
			RadarInterval:    cfg.Polling.RadarInterval,
			ChartInterval:    cfg.Polling.ChartInterval,
			SensorModel:      cfg.Polling.SensorModel,
		},
		Workers: ClientWorkers{BulkDeleteConcurrency: cfg.Workers.BulkDeleteConcurrency},
	}

	return clientCfg, clientCfg.validate()
}
