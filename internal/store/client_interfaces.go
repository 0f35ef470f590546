package store

import (
	"context"

	"github.com/MKhiriev/airguard-admin/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository caches the single console session between runs.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	LoadSession(ctx context.Context) (models.Session, error)
	DeleteSession(ctx context.Context) error
}
