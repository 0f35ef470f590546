package service

import (
	"context"

	"github.com/MKhiriev/airguard-admin/internal/adapter"
	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/invalidation"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/poller"
	"github.com/MKhiriev/airguard-admin/internal/session"
)

type ClientServices struct {
	AuthService         ClientAuthService
	ChatService         ClientChatService
	ReadingsService     ClientReadingsService
	UsersService        ClientUsersService
	TimelineService     ClientTimelineService
	AnnouncementService ClientAnnouncementService
}

func NewClientServices(
	cfg *config.ClientConfig,
	sess *session.Session,
	serverAdapter adapter.ServerAdapter,
	sched *poller.Scheduler,
	bus *invalidation.Bus,
	log *logger.Logger,
) *ClientServices {
	return &ClientServices{
		AuthService:         NewClientAuthService(sess, serverAdapter, log),
		ChatService:         NewClientChatService(cfg.Polling, sess, serverAdapter, sched, bus, log),
		ReadingsService:     NewClientReadingsService(cfg.Polling, serverAdapter, sched, bus, log),
		UsersService:        NewClientUsersService(cfg.Workers, serverAdapter, sched, bus, log),
		TimelineService:     NewClientTimelineService(serverAdapter, sched, bus, log),
		AnnouncementService: NewClientAnnouncementService(cfg.Polling, sess, serverAdapter, bus, log),
	}
}

// Wait blocks until background work started by the services, such as chat
// push notifications, has finished, or until ctx is done.
func (s *ClientServices) Wait(ctx context.Context) error {
	w, ok := s.ChatService.(interface{ Wait() })
	if !ok {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
