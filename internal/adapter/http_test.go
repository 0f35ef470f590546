// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestAdapter(t *testing.T, serverURL string, tokens TokenSource) ServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}, tokens, logger.Nop())
	require.NoError(t, err)
	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: " https://air.example.com/ ", want: "https://air.example.com"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, nil, logger.Nop())
	assert.Error(t, err)
}

// ── session token ────────────────────────────────────────────────────────────

// TestAdapter_AttachesSessionToken verifies the bearer token is read from the
// token source on every request, so a later login is picked up.
func TestAdapter_AttachesSessionToken(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.UsersResponse{})
	}))
	defer srv.Close()

	tok := &mutableToken{}
	a := newTestAdapter(t, srv.URL, tok)

	_, err := a.ListUsers(context.Background())
	require.NoError(t, err)

	tok.value = "abc"
	_, err = a.ListUsers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc"}, got)
}

type mutableToken struct{ value string }

func (m *mutableToken) Token() string { return m.value }

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/login", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin00001", creds.AccountID)

		writeJSON(t, w, http.StatusOK, models.LoginResponse{
			User:  models.User{ID: "u1", AccountID: "admin00001", Role: models.RoleAdmin},
			Token: "jwt",
		})
	}))
	defer srv.Close()

	out, err := newTestAdapter(t, srv.URL, nil).Login(context.Background(), models.Credentials{AccountID: "admin00001", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", out.Token)
	assert.Equal(t, models.RoleAdmin, out.User.Role)
}

func TestLogin_WrongPassword_ExtractsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"message": "Invalid password"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL, nil).Login(context.Background(), models.Credentials{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid password", Message(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestLogin_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.LoginResponse{User: models.User{ID: "u1"}})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL, nil).Login(context.Background(), models.Credentials{})
	assert.Error(t, err)
}

// ── Users ────────────────────────────────────────────────────────────────────

func TestUsersEndpoints(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/users":
			writeJSON(t, w, http.StatusOK, models.UsersResponse{Users: []models.User{{ID: "a"}, {ID: "b"}}})
		case "/users/a":
			writeJSON(t, w, http.StatusOK, models.UserResponse{User: models.User{ID: "a", DeviceNotif: "tok-a"}})
		case "/users/signUp":
			var form models.UserForm
			require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
			assert.Equal(t, "2021000001", form.AccountID)
			assert.Equal(t, "@Student01", form.Password)
			writeJSON(t, w, http.StatusCreated, map[string]string{"message": "created"})
		case "/users/editUser/a":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.NotContains(t, body, "password")
			assert.Equal(t, "Blocked", body["status"])
			writeJSON(t, w, http.StatusOK, map[string]string{"message": "updated"})
		case "/users/deleteUser/a":
			writeJSON(t, w, http.StatusOK, map[string]string{"message": "deleted"})
		case "/users/emails":
			writeJSON(t, w, http.StatusOK, models.EmailsResponse{Emails: []models.EmailAddress{{Email: "x@y.z"}, {Email: " "}}})
		case "/users/notifications/getNotifs":
			writeJSON(t, w, http.StatusOK, models.DeviceTokensResponse{Tokens: []string{"t1", "t2"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, staticToken("tok"))
	ctx := context.Background()

	users, err := a.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	u, err := a.GetUser(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "tok-a", u.DeviceNotif)

	require.NoError(t, a.CreateUser(ctx, models.UserForm{AccountID: "2021000001", Password: "@Student01"}))
	require.NoError(t, a.EditUser(ctx, "a", models.UserForm{Status: models.StatusBlocked, Password: "leak"}))
	require.NoError(t, a.DeleteUser(ctx, "a"))

	emails, err := a.ListEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"x@y.z"}, emails)

	tokens, err := a.ListDeviceTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, tokens)

	assert.Equal(t, []string{
		"GET /users",
		"GET /users/a",
		"POST /users/signUp",
		"POST /users/editUser/a",
		"POST /users/deleteUser/a",
		"GET /users/emails",
		"GET /users/notifications/getNotifs",
	}, seen)
}

func TestCreateUser_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]string{"error": "Account ID already exists"})
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL, nil).CreateUser(context.Background(), models.UserForm{})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Account ID already exists", Message(err))
}

// ── Readings, chat, history, outbound ─────────────────────────────────────────

func TestReadingsEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/aqReadings/modelx21":
			writeJSON(t, w, http.StatusOK, models.ReadingsResponse{Readings: []models.Reading{{AQI: 15}, {AQI: 10}}})
		case "/aqReadings":
			writeJSON(t, w, http.StatusOK, models.ReadingsResponse{Readings: []models.Reading{{AQI: 1}}})
		case "/aqChart":
			writeJSON(t, w, http.StatusOK, models.ReadingsResponse{Readings: []models.Reading{{Date: "2026-01-01"}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, nil)
	ctx := context.Background()

	latest, err := a.LatestReadings(ctx, "modelx21")
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, 15.0, latest[0].AQI)

	all, err := a.ListReadings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	chart, err := a.ChartReadings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", chart[0].Date)

	_, err = a.LatestReadings(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChatEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat", r.URL.Path)
		if r.Method == http.MethodGet {
			writeJSON(t, w, http.StatusOK, []models.ChatMessage{{ID: "m1", Message: "hi"}})
			return
		}
		var msg models.ChatMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		msg.ID = "m2"
		writeJSON(t, w, http.StatusCreated, msg)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, nil)

	msgs, err := a.ListChat(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "m1", msgs[0].ID)

	stored, err := a.PostChat(context.Background(), models.ChatMessage{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "m2", stored.ID)
	assert.Equal(t, "hello", stored.Message)
}

func TestHistoryAndOutbound(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/history" && r.Method == http.MethodGet {
			writeJSON(t, w, http.StatusOK, models.HistoryResponse{History: []models.TimelineEntry{{Message: "old"}}})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, nil)
	ctx := context.Background()

	history, err := a.ListHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old", history[0].Message)

	require.NoError(t, a.PostHistory(ctx, models.TimelineEntry{Message: "new"}))
	require.NoError(t, a.SendEmail(ctx, models.Email{To: "a@b.c"}))
	require.NoError(t, a.SendNotification(ctx, models.PushNotification{To: []string{"t"}}))

	assert.Equal(t, []string{
		"GET /history",
		"POST /history",
		"POST /email/send",
		"POST /expoToken/sendNotification",
	}, seen)
}

// ── transport failures ───────────────────────────────────────────────────────

func TestAdapter_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url, nil).ListChat(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestAdapter_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAdapter(t, srv.URL, nil).ListUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
