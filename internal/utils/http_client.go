package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client so application code can extend it without
// touching the upstream type.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL with every request limited
// to timeout. JSON is the default request and response encoding.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: c}
}
