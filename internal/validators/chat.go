package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/airguard-admin/models"
)

// ChatValidator rejects blank chat messages.
type ChatValidator struct{}

// NewChatValidator returns a [Validator] for chat text and
// [models.ChatMessage].
func NewChatValidator() Validator {
	return &ChatValidator{}
}

func (v *ChatValidator) Validate(_ context.Context, obj any, _ ...string) error {
	var text string
	switch value := obj.(type) {
	case string:
		text = value
	case models.ChatMessage:
		text = value.Message
	case *models.ChatMessage:
		text = value.Message
	default:
		return ErrUnsupportedType
	}

	if strings.TrimSpace(text) == "" {
		return FieldErrors{FieldMessage: MsgMessageRequired}
	}
	return nil
}
