package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line arguments shared by both binaries.
//
// Flags:
//
//	-a development API listen address in format [host]:[port]
//	-r remote API base URL used by the console
//	-d development API database DSN
//	-s console session cache DSN
//	-c/-config json file path with configs
//	-m sensor model shown on the dashboard
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout outgoing request timeout (e.g., "10s")
//	-chat-interval, -readings-interval, -radar-interval, -chart-interval polling intervals
//	-simulator-interval development API reading simulator period
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("airguard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var remoteAddress, databaseDSN, sessionDSN, jsonConfigPath, sensorModel string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout time.Duration
	var chatInterval, readingsInterval, radarInterval, chartInterval, simulatorInterval time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&remoteAddress, "r", "", "Remote API base URL")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&sessionDSN, "s", "", "Session cache DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&sensorModel, "m", "", "Sensor model")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	fs.DurationVar(&chatInterval, "chat-interval", 0, "Chat polling interval")
	fs.DurationVar(&readingsInterval, "readings-interval", 0, "Pollutant display polling interval")
	fs.DurationVar(&radarInterval, "radar-interval", 0, "Radar polling interval")
	fs.DurationVar(&chartInterval, "chart-interval", 0, "Time series polling interval")
	fs.DurationVar(&simulatorInterval, "simulator-interval", 0, "Reading simulator interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB:      DB{DSN: databaseDSN},
			Session: DB{DSN: sessionDSN},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			RequestTimeout: requestTimeout,
		},
		Polling: Polling{
			ChatInterval:     chatInterval,
			ReadingsInterval: readingsInterval,
			RadarInterval:    radarInterval,
			ChartInterval:    chartInterval,
			SensorModel:      sensorModel,
		},
		Workers: Workers{
			SimulatorInterval: simulatorInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string, or "" when unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
