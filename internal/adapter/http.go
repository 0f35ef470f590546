package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// The base URL is normalised from adapterCfg.HTTPAddress and every request
// is bounded by adapterCfg.RequestTimeout. When tokens is non-nil its current
// token is attached as a bearer Authorization header to every request.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, tokens TokenSource, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)
	client.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if tokens == nil {
			return nil
		}
		if token := strings.TrimSpace(tokens.Token()); token != "" {
			r.SetAuthToken(token)
		}
		return nil
	})

	return &httpServerAdapter{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
}

// do runs a prepared request and maps transport and status failures.
func (h *httpServerAdapter) do(req *resty.Request, method, path, op string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Str("op", op).
			Int("status", resp.StatusCode()).
			Err(err).
			Msg("remote api returned an error")
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Login implements [ServerAdapter]. POST /users/login.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	var out models.LoginResponse
	err := h.do(h.request(ctx).SetBody(creds).SetResult(&out), resty.MethodPost, "/users/login", "login")
	if err != nil {
		return models.LoginResponse{}, err
	}
	if out.Token == "" {
		return models.LoginResponse{}, fmt.Errorf("login: empty token in response")
	}
	return out, nil
}

// ListUsers implements [ServerAdapter]. GET /users.
func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	var out models.UsersResponse
	if err := h.do(h.request(ctx).SetResult(&out), resty.MethodGet, "/users", "list users"); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// GetUser implements [ServerAdapter]. GET /users/{id}.
func (h *httpServerAdapter) GetUser(ctx context.Context, id string) (models.User, error) {
	var out models.UserResponse
	req := h.request(ctx).SetPathParam("id", id).SetResult(&out)
	if err := h.do(req, resty.MethodGet, "/users/{id}", "get user"); err != nil {
		return models.User{}, err
	}
	return out.User, nil
}

// CreateUser implements [ServerAdapter]. POST /users/signUp.
func (h *httpServerAdapter) CreateUser(ctx context.Context, form models.UserForm) error {
	return h.do(h.request(ctx).SetBody(form), resty.MethodPost, "/users/signUp", "create user")
}

// EditUser implements [ServerAdapter]. POST /users/editUser/{id}.
func (h *httpServerAdapter) EditUser(ctx context.Context, id string, form models.UserForm) error {
	form.Password = ""
	req := h.request(ctx).SetPathParam("id", id).SetBody(form)
	return h.do(req, resty.MethodPost, "/users/editUser/{id}", "edit user")
}

// DeleteUser implements [ServerAdapter]. POST /users/deleteUser/{id}.
func (h *httpServerAdapter) DeleteUser(ctx context.Context, id string) error {
	req := h.request(ctx).SetPathParam("id", id)
	return h.do(req, resty.MethodPost, "/users/deleteUser/{id}", "delete user")
}

// ListEmails implements [ServerAdapter]. GET /users/emails; blank addresses
// are dropped.
func (h *httpServerAdapter) ListEmails(ctx context.Context) ([]string, error) {
	var out models.EmailsResponse
	if err := h.do(h.request(ctx).SetResult(&out), resty.MethodGet, "/users/emails", "list emails"); err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(out.Emails))
	for _, e := range out.Emails {
		if addr := strings.TrimSpace(e.Email); addr != "" {
			emails = append(emails, addr)
		}
	}
	return emails, nil
}

// ListDeviceTokens implements [ServerAdapter].
// GET /users/notifications/getNotifs.
func (h *httpServerAdapter) ListDeviceTokens(ctx context.Context) ([]string, error) {
	var out models.DeviceTokensResponse
	err := h.do(h.request(ctx).SetResult(&out), resty.MethodGet, "/users/notifications/getNotifs", "list device tokens")
	if err != nil {
		return nil, err
	}
	return out.Tokens, nil
}

// LatestReadings implements [ServerAdapter]. GET /aqReadings/{model}.
func (h *httpServerAdapter) LatestReadings(ctx context.Context, model string) ([]models.Reading, error) {
	var out models.ReadingsResponse
	req := h.request(ctx).SetPathParam("model", model).SetResult(&out)
	if err := h.do(req, resty.MethodGet, "/aqReadings/{model}", "latest readings"); err != nil {
		return nil, err
	}
	return out.Readings, nil
}

// ListReadings implements [ServerAdapter]. GET /aqReadings.
func (h *httpServerAdapter) ListReadings(ctx context.Context) ([]models.Reading, error) {
	var out models.ReadingsResponse
	if err := h.do(h.request(ctx).SetResult(&out), resty.MethodGet, "/aqReadings", "list readings"); err != nil {
		return nil, err
	}
	return out.Readings, nil
}

// ChartReadings implements [ServerAdapter]. GET /aqChart.
func (h *httpServerAdapter) ChartReadings(ctx context.Context) ([]models.Reading, error) {
	var out models.ReadingsResponse
	if err := h.do(h.request(ctx).SetResult(&out), resty.MethodGet, "/aqChart", "chart readings"); err != nil {
		return nil, err
	}
	return out.Readings, nil
}

// ListChat implements [ServerAdapter]. GET /chat returns a bare array.
func (h *httpServerAdapter) ListChat(ctx context.Context) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	if err := h.do(h.request(ctx).SetResult(&out), resty.MethodGet, "/chat", "list chat"); err != nil {
		return nil, err
	}
	return out, nil
}

// PostChat implements [ServerAdapter]. POST /chat echoes the stored message.
func (h *httpServerAdapter) PostChat(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error) {
	var out models.ChatMessage
	if err := h.do(h.request(ctx).SetBody(msg).SetResult(&out), resty.MethodPost, "/chat", "post chat"); err != nil {
		return models.ChatMessage{}, err
	}
	return out, nil
}

// ListHistory implements [ServerAdapter]. GET /history.
func (h *httpServerAdapter) ListHistory(ctx context.Context) ([]models.TimelineEntry, error) {
	var out models.HistoryResponse
	if err := h.do(h.request(ctx).SetResult(&out), resty.MethodGet, "/history", "list history"); err != nil {
		return nil, err
	}
	return out.History, nil
}

// PostHistory implements [ServerAdapter]. POST /history.
func (h *httpServerAdapter) PostHistory(ctx context.Context, entry models.TimelineEntry) error {
	return h.do(h.request(ctx).SetBody(entry), resty.MethodPost, "/history", "post history")
}

// SendEmail implements [ServerAdapter]. POST /email/send.
func (h *httpServerAdapter) SendEmail(ctx context.Context, email models.Email) error {
	return h.do(h.request(ctx).SetBody(email), resty.MethodPost, "/email/send", "send email")
}

// SendNotification implements [ServerAdapter].
// POST /expoToken/sendNotification.
func (h *httpServerAdapter) SendNotification(ctx context.Context, n models.PushNotification) error {
	return h.do(h.request(ctx).SetBody(n), resty.MethodPost, "/expoToken/sendNotification", "send notification")
}
