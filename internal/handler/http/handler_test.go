package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/mock"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testBearer = "valid-token"

var testBuildInfo = models.NewAppBuildInfo("v1.2.3", "2026-05-01", "abc123")

// testServices bundles the service mocks behind a Handler.
type testServices struct {
	auth     *mock.MockAuthService
	users    *mock.MockUserService
	readings *mock.MockReadingService
	chat     *mock.MockChatService
	history  *mock.MockHistoryService
	outbox   *mock.MockOutboxService
}

func newTestHandler(t *testing.T) (*Handler, *testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &testServices{
		auth:     mock.NewMockAuthService(ctrl),
		users:    mock.NewMockUserService(ctrl),
		readings: mock.NewMockReadingService(ctrl),
		chat:     mock.NewMockChatService(ctrl),
		history:  mock.NewMockHistoryService(ctrl),
		outbox:   mock.NewMockOutboxService(ctrl),
	}

	svcs := &service.Services{
		AuthService:    m.auth,
		UserService:    m.users,
		ReadingService: m.readings,
		ChatService:    m.chat,
		HistoryService: m.history,
		OutboxService:  m.outbox,
	}

	return NewHandler(svcs, testBuildInfo, logger.Nop()), m
}

// allowBearer makes testBearer a valid admin token.
func (m *testServices) allowBearer() {
	m.auth.EXPECT().ParseToken(gomock.Any(), testBearer).Return(models.Token{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-admin"},
		Role:             models.RoleAdmin,
	}, nil).AnyTimes()
}

// serve runs one request through the full router.
func serve(h *Handler, method, path string, body any, authorized bool) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testBearer)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[models.MessageResponse](t, rr).Message
}

// userFromRequest is used by tests that need to see what auth stored.
func userFromRequest(r *http.Request) (string, models.Role) {
	id, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	return id, role
}
