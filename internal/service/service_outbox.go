package service

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
)

type outboxService struct {
	outboxRepository store.OutboxRepository
	ids              utils.IDGenerator
	now              func() time.Time

	logger *logger.Logger
}

func NewOutboxService(outboxRepository store.OutboxRepository, ids utils.IDGenerator, logger *logger.Logger) OutboxService {
	return &outboxService{
		outboxRepository: outboxRepository,
		ids:              ids,
		now:              time.Now,
		logger:           logger,
	}
}

// SendEmail records email for every comma separated address in email.To.
func (o *outboxService) SendEmail(ctx context.Context, email models.Email) error {
	recipients := splitAddresses(email.To)
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	return o.enqueue(ctx, models.OutboxMessage{
		Kind:       models.OutboxEmail,
		Recipients: recipients,
		Subject:    email.Subject,
		Body:       email.Message,
	})
}

// SendNotification records n for every non-empty device token.
func (o *outboxService) SendNotification(ctx context.Context, n models.PushNotification) error {
	tokens := make([]string, 0, len(n.To))
	for _, t := range n.To {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return ErrNoRecipients
	}

	return o.enqueue(ctx, models.OutboxMessage{
		Kind:       models.OutboxPush,
		Recipients: tokens,
		Subject:    n.Title,
		Body:       n.Body,
	})
}

func (o *outboxService) List(ctx context.Context, kind models.OutboxKind) ([]models.OutboxMessage, error) {
	return o.outboxRepository.List(ctx, kind)
}

func (o *outboxService) enqueue(ctx context.Context, msg models.OutboxMessage) error {
	msg.ID = o.ids.Generate()
	msg.CreatedAt = o.now().UTC()

	if err := o.outboxRepository.Enqueue(ctx, msg); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Str("id", msg.ID).
		Str("kind", string(msg.Kind)).
		Int("recipients", len(msg.Recipients)).
		Msg("outgoing message recorded")
	return nil
}

func splitAddresses(to string) []string {
	var out []string
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
