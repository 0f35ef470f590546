package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/airguard-admin/internal/app"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── Auth ────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	admin := models.User{ID: "u-admin", AccountID: "2021000001", Role: models.RoleAdmin, Status: models.StatusReady}
	creds := models.Credentials{AccountID: "2021000001", Password: "@Admin01"}

	tests := []struct {
		name       string
		body       any
		setup      func(m *testServices)
		wantStatus int
		wantMsg    string
	}{
		{
			name: "success",
			body: creds,
			setup: func(m *testServices) {
				m.auth.EXPECT().Login(gomock.Any(), creds).Return(admin, nil)
				m.auth.EXPECT().CreateToken(gomock.Any(), admin).Return(models.Token{SignedString: "jwt"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "broken json",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
		{
			name: "wrong password",
			body: creds,
			setup: func(m *testServices) {
				m.auth.EXPECT().Login(gomock.Any(), creds).Return(models.User{}, service.ErrWrongCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgInvalidCredentials,
		},
		{
			name: "blocked",
			body: creds,
			setup: func(m *testServices) {
				m.auth.EXPECT().Login(gomock.Any(), creds).Return(models.User{}, service.ErrAccountBlocked)
			},
			wantStatus: http.StatusForbidden,
			wantMsg:    app.MsgAccountBlocked,
		},
		{
			name: "token failure",
			body: creds,
			setup: func(m *testServices) {
				m.auth.EXPECT().Login(gomock.Any(), creds).Return(admin, nil)
				m.auth.EXPECT().CreateToken(gomock.Any(), admin).Return(models.Token{}, service.ErrTokenCreationFailed)
			},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			rr := serve(h, http.MethodPost, "/users/login", tt.body, false)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, messageOf(t, rr))
				return
			}

			resp := decode[models.LoginResponse](t, rr)
			assert.Equal(t, "jwt", resp.Token)
			assert.Equal(t, "u-admin", resp.User.ID)
			assert.Equal(t, "Bearer jwt", rr.Header().Get("Authorization"))
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	routes := []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/u-1"},
		{http.MethodPost, "/users/signUp"},
		{http.MethodPost, "/users/editUser/u-1"},
		{http.MethodPost, "/users/deleteUser/u-1"},
		{http.MethodGet, "/users/emails"},
		{http.MethodGet, "/users/notifications/getNotifs"},
		{http.MethodGet, "/aqReadings"},
		{http.MethodGet, "/aqReadings/AG-1"},
		{http.MethodGet, "/aqChart"},
		{http.MethodGet, "/chat"},
		{http.MethodPost, "/chat"},
		{http.MethodGet, "/history"},
		{http.MethodPost, "/history"},
		{http.MethodPost, "/email/send"},
		{http.MethodPost, "/expoToken/sendNotification"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			h, _ := newTestHandler(t)

			rr := serve(h, rt.method, rt.path, nil, false)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, app.MsgTokenIsExpiredOrInvalid, messageOf(t, rr))
		})
	}
}

func TestAuth_RejectsBadTokens(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().ParseToken(gomock.Any(), "expired").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	for _, header := range []string{"Bearer expired", "Basic abc", "Bearer    ", "expired"} {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", header)

		rr := httptest.NewRecorder()
		h.Init().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, header)
		assert.Equal(t, app.MsgTokenIsExpiredOrInvalid, messageOf(t, rr), header)
	}
}

func TestAuth_StoresUserInContext(t *testing.T) {
	h, m := newTestHandler(t)
	m.allowBearer()

	var gotID string
	var gotRole models.Role
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotRole = userFromRequest(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+testBearer)
	h.auth(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "u-admin", gotID)
	assert.Equal(t, models.RoleAdmin, gotRole)
}

// ── Users ───────────────────────────────────────────────────────────────────

func TestListUsers(t *testing.T) {
	h, m := newTestHandler(t)
	m.allowBearer()
	m.users.EXPECT().ListUsers(gomock.Any()).Return([]models.User{{ID: "u-1"}, {ID: "u-2"}}, nil)

	rr := serve(h, http.MethodGet, "/users", nil, true)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[models.UsersResponse](t, rr)
	assert.Len(t, resp.Users, 2)
}

func TestListUsers_EmptyIsArray(t *testing.T) {
	h, m := newTestHandler(t)
	m.allowBearer()
	m.users.EXPECT().ListUsers(gomock.Any()).Return(nil, nil)

	rr := serve(h, http.MethodGet, "/users", nil, true)

	assert.JSONEq(t, `{"users":[]}`, rr.Body.String())
}

func TestGetUser(t *testing.T) {
	h, m := newTestHandler(t)
	m.allowBearer()
	m.users.EXPECT().GetUser(gomock.Any(), "u-1").Return(models.User{ID: "u-1", DeviceNotif: "tok"}, nil)
	m.users.EXPECT().GetUser(gomock.Any(), "ghost").Return(models.User{}, service.ErrUserNotFound)

	rr := serve(h, http.MethodGet, "/users/u-1", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "tok", decode[models.UserResponse](t, rr).User.DeviceNotif)

	rr = serve(h, http.MethodGet, "/users/ghost", nil, true)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, app.MsgUserNotFound, messageOf(t, rr))
}

func TestSignUp(t *testing.T) {
	form := models.UserForm{AccountID: "2021000123", Username: "Jane", Role: models.RoleStudent}

	t.Run("created", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.allowBearer()
		m.users.EXPECT().SignUp(gomock.Any(), form).Return(models.User{ID: "u-9"}, nil)

		rr := serve(h, http.MethodPost, "/users/signUp", form, true)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, app.MsgUserCreated, messageOf(t, rr))
	})

	t.Run("duplicate", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.allowBearer()
		m.users.EXPECT().SignUp(gomock.Any(), form).Return(models.User{}, service.ErrUserAlreadyExists)

		rr := serve(h, http.MethodPost, "/users/signUp", form, true)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, app.MsgUserAlreadyExists, messageOf(t, rr))
	})

	t.Run("invalid", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.allowBearer()
		m.users.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrInvalidDataProvided)

		rr := serve(h, http.MethodPost, "/users/signUp", models.UserForm{}, true)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, app.MsgInvalidDataProvided, messageOf(t, rr))
	})

	t.Run("empty body", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.allowBearer()

		rr := serve(h, http.MethodPost, "/users/signUp", nil, true)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestEditAndDeleteUser(t *testing.T) {
	h, m := newTestHandler(t)
	m.allowBearer()

	form := models.UserForm{AccountID: "2021000123", Username: "Jane", Role: models.RoleStudent, Status: models.StatusBlocked}
	m.users.EXPECT().EditUser(gomock.Any(), "u-1", form).Return(nil)
	m.users.EXPECT().DeleteUser(gomock.Any(), "u-1").Return(nil)
	m.users.EXPECT().DeleteUser(gomock.Any(), "ghost").Return(service.ErrUserNotFound)

	rr := serve(h, http.MethodPost, "/users/editUser/u-1", form, true)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, app.MsgUserUpdated, messageOf(t, rr))

	rr = serve(h, http.MethodPost, "/users/deleteUser/u-1", nil, true)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, app.MsgUserDeleted, messageOf(t, rr))

	rr = serve(h, http.MethodPost, "/users/deleteUser/ghost", nil, true)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListEmailsAndDeviceTokens(t *testing.T) {
	h, m := newTestHandler(t)
	m.allowBearer()
	m.users.EXPECT().ListEmails(gomock.Any()).Return([]string{"a@x.io", "b@x.io"}, nil)
	m.users.EXPECT().ListDeviceTokens(gomock.Any()).Return([]string{"tok-1"}, nil)

	rr := serve(h, http.MethodGet, "/users/emails", nil, true)
	assert.JSONEq(t, `{"emails":[{"email":"a@x.io"},{"email":"b@x.io"}]}`, rr.Body.String())

	rr = serve(h, http.MethodGet, "/users/notifications/getNotifs", nil, true)
	assert.JSONEq(t, `{"allDeviceNotifs":["tok-1"]}`, rr.Body.String())
}

// ── Readings ────────────────────────────────────────────────────────────────

func TestReadings(t *testing.T) {
	h, m := newTestHandler(t)
	m.allowBearer()

	m.readings.EXPECT().List(gomock.Any()).Return([]models.Reading{{ID: "r-1"}, {ID: "r-2"}}, nil)
	m.readings.EXPECT().Latest(gomock.Any(), "AG-1").Return([]models.Reading{{ID: "r-2", Model: "AG-1"}}, nil)
	m.readings.EXPECT().Chart(gomock.Any()).Return(nil, errors.New("db down"))

	rr := serve(h, http.MethodGet, "/aqReadings", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[models.ReadingsResponse](t, rr).Readings, 2)

	rr = serve(h, http.MethodGet, "/aqReadings/AG-1", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "AG-1", decode[models.ReadingsResponse](t, rr).Readings[0].Model)

	rr = serve(h, http.MethodGet, "/aqChart", nil, true)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, app.MsgInternalServerError, messageOf(t, rr))
}

// ── Chat ────────────────────────────────────────────────────────────────────

func TestChat(t *testing.T) {
	h, m := newTestHandler(t)
	m.allowBearer()

	m.chat.EXPECT().List(gomock.Any()).Return(nil, nil)
	m.chat.EXPECT().Post(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.ChatMessage) (models.ChatMessage, error) {
			msg.ID = "c-1"
			return msg, nil
		},
	)

	rr := serve(h, http.MethodGet, "/chat", nil, true)
	assert.JSONEq(t, `[]`, rr.Body.String(), "chat is a bare array")

	rr = serve(h, http.MethodPost, "/chat", models.ChatMessage{Message: "hi", Sender: "Admin", Role: models.RoleAdmin}, true)
	require.Equal(t, http.StatusCreated, rr.Code)
	stored := decode[models.ChatMessage](t, rr)
	assert.Equal(t, "c-1", stored.ID)
	assert.Equal(t, "hi", stored.Message)
}

// ── History ─────────────────────────────────────────────────────────────────

func TestHistory(t *testing.T) {
	h, m := newTestHandler(t)
	m.allowBearer()

	entry := models.TimelineEntry{Date: "2026-05-01", Timestamp: "1:00:00 PM", AQI: 42, ScannedBy: "Admin"}
	m.history.EXPECT().List(gomock.Any()).Return([]models.TimelineEntry{entry}, nil)
	m.history.EXPECT().Post(gomock.Any(), entry).Return(entry, nil)

	rr := serve(h, http.MethodGet, "/history", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[models.HistoryResponse](t, rr).History, 1)

	rr = serve(h, http.MethodPost, "/history", entry, true)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, app.MsgHistoryCreated, messageOf(t, rr))
}

// ── Outbox ──────────────────────────────────────────────────────────────────

func TestOutbox(t *testing.T) {
	h, m := newTestHandler(t)
	m.allowBearer()

	email := models.Email{To: "a@x.io", Subject: "s", Message: "m"}
	push := models.PushNotification{To: []string{"tok"}, Title: models.NotificationTitle, Body: "b", Sound: models.NotificationSound}
	m.outbox.EXPECT().SendEmail(gomock.Any(), email).Return(nil)
	m.outbox.EXPECT().SendNotification(gomock.Any(), push).Return(nil)
	m.outbox.EXPECT().SendNotification(gomock.Any(), models.PushNotification{}).Return(service.ErrNoRecipients)

	rr := serve(h, http.MethodPost, "/email/send", email, true)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, app.MsgEmailSent, messageOf(t, rr))

	rr = serve(h, http.MethodPost, "/expoToken/sendNotification", push, true)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, app.MsgNotificationSent, messageOf(t, rr))

	rr = serve(h, http.MethodPost, "/expoToken/sendNotification", models.PushNotification{}, true)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgNoRecipients, messageOf(t, rr))
}

// ── Misc ────────────────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h, http.MethodGet, "/version", nil, false)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "AirGuard Admin v1.2.3 (2026-05-01, abc123)", rr.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h, http.MethodGet, "/nope", nil, false)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, app.MsgRouteNotFound, messageOf(t, rr))
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h, http.MethodDelete, "/chat", nil, false)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, POST", rr.Header().Get("Allow"))
	assert.Equal(t, app.MsgMethodNotAllowed, messageOf(t, rr))
}
