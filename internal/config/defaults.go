package config

import "time"

// Defaults observed on the production dashboard.
const (
	DefaultRemoteAddress    = "https://air-quality-back-end-v2.vercel.app"
	DefaultSensorModel      = "modelx21"
	DefaultChatInterval     = time.Second
	DefaultReadingsInterval = 2 * time.Second
	// DefaultChartInterval matches the dashboard chart timer.
	DefaultChartInterval = 36 * time.Second
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "airguard-devapi",
			TokenDuration: 24 * time.Hour,
			Version:       "dev",
		},
		Storage: Storage{
			Session: DB{DSN: "airguard-session.db"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultRemoteAddress,
			RequestTimeout: 10 * time.Second,
		},
		Polling: Polling{
			ChatInterval:     DefaultChatInterval,
			ReadingsInterval: DefaultReadingsInterval,
			RadarInterval:    DefaultReadingsInterval,
			ChartInterval:    DefaultChartInterval,
			SensorModel:      DefaultSensorModel,
		},
		Workers: Workers{
			BulkDeleteConcurrency: 4,
		},
	}
}
