package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return NewAPIError(resp.StatusCode(), extractMessage(resp.Body(), resp.StatusCode()))
}

// NewAPIError returns the error for a non-2xx status with the given server
// message.
func NewAPIError(status int, message string) *APIError {
	apiErr := &APIError{StatusCode: status, Message: message}

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		apiErr.kind = ErrBadRequest
	case http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
	case http.StatusForbidden:
		apiErr.kind = ErrForbidden
	case http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case http.StatusConflict:
		apiErr.kind = ErrConflict
	case http.StatusBadGateway:
		apiErr.kind = ErrBadGateway
	case http.StatusInternalServerError:
		apiErr.kind = ErrInternalServerError
	default:
		apiErr.kind = ErrUnexpectedStatus
	}

	return apiErr
}

// extractMessage pulls a human readable message out of an error body. The
// remote API answers {"message": "..."}; some routes use {"error": "..."}.
func extractMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
	}

	if raw := strings.TrimSpace(string(body)); raw != "" && !strings.HasPrefix(raw, "{") {
		return raw
	}

	return http.StatusText(status)
}
