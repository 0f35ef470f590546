package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/MKhiriev/airguard-admin/internal/adapter"
	"github.com/MKhiriev/airguard-admin/internal/app"
	"github.com/stretchr/testify/assert"
)

func TestMapAdapterError(t *testing.T) {
	transport := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"invalid credentials", adapter.NewAPIError(http.StatusUnauthorized, app.MsgInvalidCredentials), ErrWrongCredentials},
		{"expired token", adapter.NewAPIError(http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid), ErrTokenIsExpiredOrInvalid},
		{"blocked", adapter.NewAPIError(http.StatusForbidden, app.MsgAccountBlocked), ErrAccountBlocked},
		{"user not found", adapter.NewAPIError(http.StatusNotFound, app.MsgUserNotFound), ErrUserNotFound},
		{"duplicate on 400", adapter.NewAPIError(http.StatusBadRequest, app.MsgUserAlreadyExists), ErrUserAlreadyExists},
		{"conflict", adapter.NewAPIError(http.StatusConflict, "taken"), ErrUserAlreadyExists},
		{"invalid data", adapter.NewAPIError(http.StatusBadRequest, app.MsgInvalidDataProvided), ErrInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "the adapter error stays in the chain")
		})
	}

	t.Run("unmapped errors pass through", func(t *testing.T) {
		assert.Same(t, transport, mapAdapterError(transport))

		forbidden := adapter.NewAPIError(http.StatusForbidden, "Admins only")
		assert.Equal(t, error(forbidden), mapAdapterError(forbidden))
	})

	t.Run("server message survives", func(t *testing.T) {
		err := mapAdapterError(adapter.NewAPIError(http.StatusUnauthorized, app.MsgInvalidCredentials))
		assert.Equal(t, app.MsgInvalidCredentials, adapter.Message(err))
	})
}
