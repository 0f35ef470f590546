package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout. Durations accept either
// a Go duration string ("36s") or nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		SeedAdminAccountID string   `json:"seed_admin_account_id"`
		SeedAdminPassword  string   `json:"seed_admin_password"`
		Version            string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Session struct {
			DSN string `json:"dsn"`
		} `json:"session,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Polling struct {
		ChatInterval     Duration `json:"chat_interval"`
		ReadingsInterval Duration `json:"readings_interval"`
		RadarInterval    Duration `json:"radar_interval"`
		ChartInterval    Duration `json:"chart_interval"`
		SensorModel      string   `json:"sensor_model"`
	} `json:"polling,omitempty"`

	Workers struct {
		BulkDeleteConcurrency int      `json:"bulk_delete_concurrency"`
		SimulatorInterval     Duration `json:"simulator_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:       j.App.TokenSignKey,
			TokenIssuer:        j.App.TokenIssuer,
			TokenDuration:      time.Duration(j.App.TokenDuration),
			SeedAdminAccountID: j.App.SeedAdminAccountID,
			SeedAdminPassword:  j.App.SeedAdminPassword,
			Version:            j.App.Version,
		},
		Storage: Storage{
			DB:      DB{DSN: j.Storage.DB.DSN},
			Session: DB{DSN: j.Storage.Session.DSN},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Polling: Polling{
			ChatInterval:     time.Duration(j.Polling.ChatInterval),
			ReadingsInterval: time.Duration(j.Polling.ReadingsInterval),
			RadarInterval:    time.Duration(j.Polling.RadarInterval),
			ChartInterval:    time.Duration(j.Polling.ChartInterval),
			SensorModel:      j.Polling.SensorModel,
		},
		Workers: Workers{
			BulkDeleteConcurrency: j.Workers.BulkDeleteConcurrency,
			SimulatorInterval:     time.Duration(j.Workers.SimulatorInterval),
		},
	}, nil
}

// Duration is a time.Duration that unmarshals from strings like "1h" or "36s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
