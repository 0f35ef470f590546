// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by both
// binaries.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the development API listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote API client settings used by the console.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Polling holds the refresh interval of every live view.
	Polling Polling `envPrefix:"POLLING_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds token and versioning settings.
type App struct {
	// TokenSignKey signs and verifies JWTs issued by the development API.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an issued token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// SeedAdminAccountID and SeedAdminPassword create an admin account on
	// development API start-up when both are set and the account is missing.
	// Env: APP_SEED_ADMIN_ACCOUNT_ID, APP_SEED_ADMIN_PASSWORD
	SeedAdminAccountID string `env:"SEED_ADMIN_ACCOUNT_ID"`
	SeedAdminPassword  string `env:"SEED_ADMIN_PASSWORD"`

	// Version is exposed in logs and the console footer.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups database settings.
type Storage struct {
	// DB is the development API database.
	DB DB `envPrefix:"DB_"`

	// Session is the console's local session cache.
	Session DB `envPrefix:"SESSION_"`
}

// DB holds a database connection string. A "postgres://" or "postgresql://"
// DSN selects PostgreSQL, anything else is treated as a SQLite file path.
type DB struct {
	// Env: STORAGE_DB_DSN / STORAGE_SESSION_DSN
	DSN string `env:"DSN"`
}

// Server holds the development API listener settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling time of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the remote API client settings.
type Adapter struct {
	// HTTPAddress is the base URL of the remote API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outgoing request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Polling holds refresh intervals of the live views.
type Polling struct {
	// Env: POLLING_CHAT_INTERVAL
	ChatInterval time.Duration `env:"CHAT_INTERVAL"`

	// ReadingsInterval drives the pollutant display.
	// Env: POLLING_READINGS_INTERVAL
	ReadingsInterval time.Duration `env:"READINGS_INTERVAL"`

	// RadarInterval drives the radar view. When equal to ReadingsInterval
	// both views share one polling loop.
	// Env: POLLING_RADAR_INTERVAL
	RadarInterval time.Duration `env:"RADAR_INTERVAL"`

	// ChartInterval drives the time-series view.
	// Env: POLLING_CHART_INTERVAL
	ChartInterval time.Duration `env:"CHART_INTERVAL"`

	// SensorModel selects the sensor whose latest reading is displayed.
	// Env: POLLING_SENSOR_MODEL
	SensorModel string `env:"SENSOR_MODEL"`
}

// Workers holds background worker settings.
type Workers struct {
	// BulkDeleteConcurrency bounds parallel deletes in best-effort mode.
	// Env: WORKERS_BULK_DELETE_CONCURRENCY
	BulkDeleteConcurrency int `env:"BULK_DELETE_CONCURRENCY"`

	// SimulatorInterval is how often the development API produces a reading.
	// Zero disables the simulator.
	// Env: WORKERS_SIMULATOR_INTERVAL
	SimulatorInterval time.Duration `env:"SIMULATOR_INTERVAL"`
}

// GetStructuredConfig loads and merges the configuration from every source
// using the process arguments and environment.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv(dotEnvPath()).
		withEnv().
		withFlags(osArgs()).
		withJSON().
		build()
}
