package service

import (
	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/internal/utils"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	ReadingService ReadingService
	ChatService    ChatService
	HistoryService HistoryService
	OutboxService  OutboxService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) *Services {
	ids := utils.NewUUIDGenerator()

	userService := NewUserValidationService().Wrap(NewUserService(storages.UserRepository, ids, logger))

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, ids, cfg.App, logger),
		UserService:    userService,
		ReadingService: NewReadingService(storages.ReadingRepository, ids, logger),
		ChatService:    NewChatService(storages.ChatRepository, ids, logger),
		HistoryService: NewHistoryService(storages.HistoryRepository, ids, logger),
		OutboxService:  NewOutboxService(storages.OutboxRepository, ids, logger),
	}
}
