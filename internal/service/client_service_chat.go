package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/adapter"
	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/invalidation"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/poller"
	"github.com/MKhiriev/airguard-admin/internal/session"
	"github.com/MKhiriev/airguard-admin/internal/validators"
	"github.com/MKhiriev/airguard-admin/models"
)

// ChatState is the chat log as shown by the chat screen.
type ChatState struct {
	Messages []models.ChatMessage
	ViewMeta
}

type clientChatService struct {
	key       poller.Key
	session   *session.Session
	adapter   adapter.ServerAdapter
	scheduler *poller.Scheduler
	bus       *invalidation.Bus
	validator validators.Validator
	logger    *logger.Logger
	now       func() time.Time

	// watchMu serialises starting and stopping the poll.
	watchMu  sync.Mutex
	stopPoll func()

	// notifyMu serialises listener calls so they observe states in order.
	notifyMu sync.Mutex

	mu        sync.Mutex
	messages  []models.ChatMessage
	meta      ViewMeta
	lastSeq   uint64
	listeners map[uint64]func(ChatState)
	nextID    uint64

	fanout sync.WaitGroup
}

func NewClientChatService(
	polling config.ClientPolling,
	sess *session.Session,
	serverAdapter adapter.ServerAdapter,
	sched *poller.Scheduler,
	bus *invalidation.Bus,
	log *logger.Logger,
) ClientChatService {
	return &clientChatService{
		key:       poller.Key{Endpoint: endpointChat, Interval: polling.ChatInterval},
		session:   sess,
		adapter:   serverAdapter,
		scheduler: sched,
		bus:       bus,
		validator: validators.NewChatValidator(),
		logger:    log,
		now:       time.Now,
		meta:      ViewMeta{Loading: true},
		listeners: make(map[uint64]func(ChatState)),
	}
}

// Watch delivers the current state to fn right away. fn must not call back
// into the service.
func (c *clientChatService) Watch(fn func(ChatState)) func() {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()

	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	first := len(c.listeners) == 1
	c.mu.Unlock()

	c.notifyOne(fn)

	if first {
		c.stopPoll = watchEntity(c.scheduler, c.bus, invalidation.Chat, c.key, c.adapter.ListChat, c.onPoll)
	}

	var once sync.Once
	return func() {
		once.Do(func() { c.unwatch(id) })
	}
}

func (c *clientChatService) unwatch(id uint64) {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()

	c.mu.Lock()
	delete(c.listeners, id)
	last := len(c.listeners) == 0
	if last {
		// the next watch starts a fresh loop that counts from 1 again
		c.lastSeq = 0
	}
	c.mu.Unlock()

	if last && c.stopPoll != nil {
		c.stopPoll()
		c.stopPoll = nil
	}
}

func (c *clientChatService) onPoll(snap poller.Snapshot[[]models.ChatMessage]) {
	c.mu.Lock()
	if snap.Seq <= c.lastSeq {
		c.mu.Unlock()
		return
	}
	c.lastSeq = snap.Seq

	if snap.HasValue && snap.Err == nil {
		c.messages = uniqueByID(snap.Value)
	}
	c.meta = metaOf(snap)
	c.mu.Unlock()

	c.notify()
}

func (c *clientChatService) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	if err := c.validator.Validate(ctx, text); err != nil {
		return models.ChatMessage{}, err
	}

	user, ok := c.session.User()
	if !ok {
		return models.ChatMessage{}, ErrNoSession
	}

	msg := models.NewChatMessage(strings.TrimSpace(text), user.Username, user.Role, c.now())

	stored, err := c.adapter.PostChat(ctx, msg)
	if err != nil {
		return models.ChatMessage{}, mapAdapterError(err)
	}
	if stored.Message == "" {
		id := stored.ID
		stored = msg
		stored.ID = id
	}

	if c.appendMessage(stored) {
		c.notify()
	}

	c.fanOut(ctx, user, stored)

	return stored, nil
}

// appendMessage adds msg unless a message with the same id is already
// listed. It reports whether the list changed.
func (c *clientChatService) appendMessage(msg models.ChatMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msg.ID != "" && slices.ContainsFunc(c.messages, func(m models.ChatMessage) bool { return m.ID == msg.ID }) {
		return false
	}
	c.messages = append(slices.Clip(c.messages), msg)
	return true
}

// fanOut pushes msg to every registered device except the sender's own.
// It runs in the background and only logs failures.
func (c *clientChatService) fanOut(ctx context.Context, sender models.User, msg models.ChatMessage) {
	ctx = context.WithoutCancel(ctx)
	log := c.logger.WithStr("chat_message_id", msg.ID)

	c.fanout.Go(func() {
		self, err := c.adapter.GetUser(ctx, sender.ID)
		if err != nil {
			log.Warn().Err(err).Msg("error fetching own device token, push skipped")
			return
		}

		tokens, err := c.adapter.ListDeviceTokens(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("error fetching device tokens, push skipped")
			return
		}

		recipients := make([]string, 0, len(tokens))
		for _, t := range tokens {
			if t == "" || t == self.DeviceNotif {
				continue
			}
			recipients = append(recipients, t)
		}
		if len(recipients) == 0 {
			log.Debug().Msg("no other devices registered, push skipped")
			return
		}

		err = c.adapter.SendNotification(ctx, models.PushNotification{
			To:    recipients,
			Title: models.NotificationTitle,
			Body:  sender.Username + ": " + msg.Message,
			Sound: models.NotificationSound,
		})
		if err != nil {
			log.Warn().Err(err).Int("recipients", len(recipients)).Msg("error sending chat push notification")
			return
		}
		log.Debug().Int("recipients", len(recipients)).Msg("chat push notification sent")
	})
}

// Wait blocks until every push fan-out started by Send has finished.
func (c *clientChatService) Wait() {
	c.fanout.Wait()
}

func (c *clientChatService) state() ChatState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ChatState{Messages: slices.Clone(c.messages), ViewMeta: c.meta}
}

func (c *clientChatService) notify() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	st := c.state()
	c.mu.Lock()
	fns := make([]func(ChatState), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

func (c *clientChatService) notifyOne(fn func(ChatState)) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	fn(c.state())
}

// uniqueByID returns a copy of msgs keeping the first message of every id.
// Messages without an id are kept as they are.
func uniqueByID(msgs []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(msgs))
	seen := make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		if m.ID != "" {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
		}
		out = append(out, m)
	}
	return out
}
