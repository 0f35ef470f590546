package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/internal/validators"
	"github.com/MKhiriev/airguard-admin/models"
)

type chatService struct {
	chatRepository store.ChatRepository
	ids            utils.IDGenerator
	validator      validators.Validator

	logger *logger.Logger
}

func NewChatService(chatRepository store.ChatRepository, ids utils.IDGenerator, logger *logger.Logger) ChatService {
	return &chatService{
		chatRepository: chatRepository,
		ids:            ids,
		validator:      validators.NewChatValidator(),
		logger:         logger,
	}
}

// Post stores msg under a new id and returns the stored message.
func (c *chatService) Post(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error) {
	if err := c.validator.Validate(ctx, msg); err != nil {
		return models.ChatMessage{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	msg.ID = c.ids.Generate()
	if err := c.chatRepository.SaveMessage(ctx, msg); err != nil {
		return models.ChatMessage{}, err
	}

	logger.FromContext(ctx).Debug().Str("id", msg.ID).Str("sender", msg.Sender).Msg("chat message stored")
	return msg, nil
}

func (c *chatService) List(ctx context.Context) ([]models.ChatMessage, error) {
	return c.chatRepository.ListMessages(ctx)
}
