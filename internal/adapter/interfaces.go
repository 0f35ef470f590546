// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the AirGuard REST API.
//
// The primary abstraction is [ServerAdapter]. [NewHTTPServerAdapter] returns
// the resty implementation, which attaches the bearer token of the current
// session to every request and bounds each call with the configured timeout.
//
// Non-2xx responses become [*APIError] values that unwrap to the sentinels in
// errors.go (e.g. [ErrUnauthorized] for 401) and carry the message extracted
// from the response body.
package adapter

import (
	"context"

	"github.com/MKhiriev/airguard-admin/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// TokenSource supplies the bearer token for outgoing requests. An empty token
// means the request is sent without an Authorization header.
type TokenSource interface {
	Token() string
}

// ServerAdapter is the console's view of the remote API. Every list method
// returns the full current collection; callers replace their copy wholesale.
type ServerAdapter interface {
	// Login exchanges credentials for a user record and a bearer token.
	Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error)

	// ListUsers returns every account in server order.
	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUser returns one account, including its device push token.
	GetUser(ctx context.Context, id string) (models.User, error)

	// CreateUser signs up a new account.
	CreateUser(ctx context.Context, form models.UserForm) error

	// EditUser replaces the editable fields of account id.
	EditUser(ctx context.Context, id string, form models.UserForm) error

	// DeleteUser removes account id.
	DeleteUser(ctx context.Context, id string) error

	// ListEmails returns every non-empty account email address.
	ListEmails(ctx context.Context) ([]string, error)

	// ListDeviceTokens returns the push tokens of every registered device.
	ListDeviceTokens(ctx context.Context) ([]string, error)

	// LatestReadings returns readings of one sensor model, newest first.
	LatestReadings(ctx context.Context, model string) ([]models.Reading, error)

	// ListReadings returns readings of every sensor, newest first.
	ListReadings(ctx context.Context) ([]models.Reading, error)

	// ChartReadings returns the time-series readings with parseable dates.
	ChartReadings(ctx context.Context) ([]models.Reading, error)

	// ListChat returns the whole chat log in append order.
	ListChat(ctx context.Context) ([]models.ChatMessage, error)

	// PostChat appends msg and returns the stored message with its id.
	PostChat(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error)

	// ListHistory returns every timeline entry in server order.
	ListHistory(ctx context.Context) ([]models.TimelineEntry, error)

	// PostHistory appends a timeline entry.
	PostHistory(ctx context.Context, entry models.TimelineEntry) error

	// SendEmail asks the server to deliver an email.
	SendEmail(ctx context.Context, email models.Email) error

	// SendNotification asks the server to push n to its device tokens.
	SendNotification(ctx context.Context, n models.PushNotification) error
}
