package service

import (
	"context"

	"github.com/MKhiriev/airguard-admin/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	SeedAdmin(ctx context.Context, accountID, password string) error
}

type UserService interface {
	SignUp(ctx context.Context, form models.UserForm) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	EditUser(ctx context.Context, id string, form models.UserForm) error
	DeleteUser(ctx context.Context, id string) error

	ListEmails(ctx context.Context) ([]string, error)
	ListDeviceTokens(ctx context.Context) ([]string, error)
}

type ReadingService interface {
	Record(ctx context.Context, reading models.Reading) (models.Reading, error)
	Latest(ctx context.Context, model string) ([]models.Reading, error)
	List(ctx context.Context) ([]models.Reading, error)
	Chart(ctx context.Context) ([]models.Reading, error)
}

type ChatService interface {
	Post(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error)
	List(ctx context.Context) ([]models.ChatMessage, error)
}

type HistoryService interface {
	Post(ctx context.Context, entry models.TimelineEntry) (models.TimelineEntry, error)
	List(ctx context.Context) ([]models.TimelineEntry, error)
}

// OutboxService records outgoing emails and push notifications instead of
// delivering them.
type OutboxService interface {
	SendEmail(ctx context.Context, email models.Email) error
	SendNotification(ctx context.Context, n models.PushNotification) error
	List(ctx context.Context, kind models.OutboxKind) ([]models.OutboxMessage, error)
}
