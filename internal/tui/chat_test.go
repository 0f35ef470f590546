package tui

import (
	"context"
	"testing"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/validators"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	state    service.ChatState
	watchers int
	sent     []string
	err      error
}

func (f *fakeChat) Watch(fn func(service.ChatState)) func() {
	f.watchers++
	fn(f.state)
	return func() { f.watchers-- }
}

func (f *fakeChat) Send(_ context.Context, text string) (models.ChatMessage, error) {
	f.sent = append(f.sent, text)
	return models.ChatMessage{ID: "m1", Message: text}, f.err
}

var chatAdmin = models.User{ID: "u-1", Username: "Ms. Rivera", Role: models.RoleAdmin}

func openChat(t *testing.T, svc *fakeChat) *chatModel {
	t.Helper()

	m := newChatModel(context.Background(), svc, chatAdmin)
	m.Update(m.open()())
	return m
}

func TestChatModel_RendersLog(t *testing.T) {
	svc := &fakeChat{state: service.ChatState{Messages: []models.ChatMessage{
		{ID: "1", Sender: "Ms. Rivera", Role: models.RoleAdmin, Message: "Masks on today"},
		{ID: "2", Sender: "Ken", Role: models.RoleStudent, Message: "Noted"},
	}}}
	m := openChat(t, svc)

	log := m.renderLog()

	assert.Contains(t, log, "You")
	assert.Contains(t, log, "Ken")
	assert.Contains(t, log, "Masks on today")
	assert.NotContains(t, log, "Ms. Rivera", "own messages are labelled You")

	m.close()
	assert.Zero(t, svc.watchers)
}

func TestChatModel_Empty(t *testing.T) {
	m := openChat(t, &fakeChat{})

	assert.Contains(t, m.renderLog(), "no messages yet")
}

func TestChatModel_SendClearsInput(t *testing.T) {
	svc := &fakeChat{}
	m := openChat(t, svc)

	typeText(m, "Stay inside")
	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.sending)
	assert.Nil(t, press(m, "enter"), "one send at a time")

	m.Update(cmd())

	assert.Equal(t, []string{"Stay inside"}, svc.sent)
	assert.False(t, m.sending)
	assert.Empty(t, m.input.Value())
	assert.Empty(t, m.errMsg)
}

func TestChatModel_SendFailureKeepsInput(t *testing.T) {
	svc := &fakeChat{err: validators.FieldErrors{validators.FieldMessage: validators.MsgMessageRequired}}
	m := openChat(t, svc)

	typeText(m, "   ")
	m.Update(press(m, "enter")())

	assert.Equal(t, validators.MsgMessageRequired, m.errMsg)
	assert.Equal(t, "   ", m.input.Value())
}
