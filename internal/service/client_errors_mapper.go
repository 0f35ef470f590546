// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/airguard-admin/internal/adapter"
	"github.com/MKhiriev/airguard-admin/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The original error stays in the chain so that
// [adapter.Message] still yields the server's wording.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := adapter.Message(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgUserAlreadyExists:
			return wrapAs(ErrUserAlreadyExists, err)
		case app.MsgInvalidDataProvided:
			return wrapAs(ErrInvalidDataProvided, err)
		}
		if errors.Is(err, adapter.ErrConflict) {
			return wrapAs(ErrUserAlreadyExists, err)
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidCredentials:
			return wrapAs(ErrWrongCredentials, err)
		default:
			return wrapAs(ErrTokenIsExpiredOrInvalid, err)
		}

	case errors.Is(err, adapter.ErrForbidden):
		if msg == app.MsgAccountBlocked {
			return wrapAs(ErrAccountBlocked, err)
		}

	case errors.Is(err, adapter.ErrNotFound):
		if msg == app.MsgUserNotFound {
			return wrapAs(ErrUserNotFound, err)
		}
	}

	return err
}

func wrapAs(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}
