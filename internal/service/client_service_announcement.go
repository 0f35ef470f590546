package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/adapter"
	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/invalidation"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/session"
	"github.com/MKhiriev/airguard-admin/models"
)

// AirQualityStatus is the wording of an alert for one AQI band.
type AirQualityStatus struct {
	Message   string
	Subject   string
	Risk      string
	Condition string
}

var airQualityStatuses = []struct {
	max    float64
	status AirQualityStatus
}{
	{10, AirQualityStatus{
		Message:   "Alert: Air quality is optimal, no health concerns. Outdoor activities can continue as usual.",
		Subject:   "Air Quality: Optimal",
		Risk:      "Minimal Risk",
		Condition: "Conditions are stable and low-risk, requiring minimal attention.",
	}},
	{40, AirQualityStatus{
		Message:   "Advisory: Air quality is acceptable. Minor precautions may be needed for sensitive individuals.",
		Subject:   "Air Quality: Acceptable",
		Risk:      "Mild Risk",
		Condition: "Mild",
	}},
	{90, AirQualityStatus{
		Message:   "Warning: Air quality is moderate. Sensitive individuals may experience mild symptoms",
		Subject:   "Air Quality: Moderate",
		Risk:      "Moderate Risk",
		Condition: "Raised",
	}},
	{200, AirQualityStatus{
		Message:   "Warning: Air quality is high. People with respiratory or heart conditions should go far from areas with poor air quality to reduce exposure.",
		Subject:   "Air Quality: High - Health Alert",
		Risk:      "Unhealthy for Sensitive Groups",
		Condition: "Serious",
	}},
	{280, AirQualityStatus{
		Message:   "Advisory: Air quality is very high. Everyone should avoid outdoor activities and move far from areas with poor air quality. Vulnerable individuals should prioritize safety and avoid exposure.",
		Subject:   "Air Quality: Very High - Urgent",
		Risk:      "Very High Risk",
		Condition: "Severe",
	}},
}

var emergencyStatus = AirQualityStatus{
	Message:   "Emergency: Air quality is critically hazardous. It is strongly advised that everyone go far from affected areas and take necessary precautions.",
	Subject:   "Air Quality: Emergency - Critical",
	Risk:      "Extremely High",
	Condition: "Hazardous",
}

// AirQualityStatusFor returns the alert wording for aqi.
func AirQualityStatusFor(aqi float64) AirQualityStatus {
	for _, s := range airQualityStatuses {
		if aqi <= s.max {
			return s.status
		}
	}
	return emergencyStatus
}

// Announcement is a composed alert. Subject and Message may be edited
// before sending; Details is fixed at compose time.
type Announcement struct {
	// To is the comma separated list of recipient addresses.
	To         string
	Subject    string
	Message    string
	Details    string
	Reading    models.Reading
	Status     AirQualityStatus
	ComposedAt time.Time
}

// Body is the text sent by email and posted to chat.
func (a Announcement) Body() string {
	return a.Message + "\n" + a.Details
}

// FormatDetails renders the reading block appended to every alert.
func FormatDetails(r models.Reading, status AirQualityStatus, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AQI: %s\n", formatValue(r.AQI))
	fmt.Fprintf(&b, "PM 2.5: %s\n", formatValue(r.PM25))
	fmt.Fprintf(&b, "PM 10: %s\n", formatValue(r.PM10))
	fmt.Fprintf(&b, "CO: %s\n", formatValue(r.CO))
	fmt.Fprintf(&b, "NO2: %s\n", formatValue(r.NO2))
	fmt.Fprintf(&b, "Timestamp: %s\n", models.HistoryTime(at))
	fmt.Fprintf(&b, "Date: %s\n", models.HistoryDate(at))
	fmt.Fprintf(&b, "Risk: %s\n", status.Risk)
	fmt.Fprintf(&b, "Condition: %s", status.Condition)
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type clientAnnouncementService struct {
	model   string
	session *session.Session
	adapter adapter.ServerAdapter
	bus     *invalidation.Bus
	logger  *logger.Logger
	now     func() time.Time
}

func NewClientAnnouncementService(
	polling config.ClientPolling,
	sess *session.Session,
	serverAdapter adapter.ServerAdapter,
	bus *invalidation.Bus,
	log *logger.Logger,
) ClientAnnouncementService {
	return &clientAnnouncementService{
		model:   polling.SensorModel,
		session: sess,
		adapter: serverAdapter,
		bus:     bus,
		logger:  log,
		now:     time.Now,
	}
}

func (s *clientAnnouncementService) Compose(ctx context.Context) (Announcement, error) {
	emails, err := s.adapter.ListEmails(ctx)
	if err != nil {
		return Announcement{}, fmt.Errorf("list emails: %w", mapAdapterError(err))
	}

	readings, err := s.adapter.ListReadings(ctx)
	if err != nil {
		return Announcement{}, fmt.Errorf("list readings: %w", mapAdapterError(err))
	}
	if len(readings) == 0 {
		return Announcement{}, ErrNoReadings
	}

	latest := readings[0]
	status := AirQualityStatusFor(latest.AQI)
	now := s.now()

	return Announcement{
		To:         strings.Join(emails, ","),
		Subject:    status.Subject,
		Message:    status.Message,
		Details:    FormatDetails(latest, status, now),
		Reading:    latest,
		Status:     status,
		ComposedAt: now,
	}, nil
}

func (s *clientAnnouncementService) Send(ctx context.Context, a Announcement) error {
	user, ok := s.session.User()
	if !ok {
		return ErrNoSession
	}

	log := s.logger.WithStr("subject", a.Subject)
	now := s.now()

	if a.To == "" {
		log.Info().Msg("no account has an email address, email skipped")
	} else {
		err := s.adapter.SendEmail(ctx, models.Email{To: a.To, Subject: a.Subject, Message: a.Body()})
		if err != nil {
			return fmt.Errorf("send email: %w", mapAdapterError(err))
		}
	}

	entry := models.TimelineEntry{
		Date:              models.HistoryDate(now),
		Timestamp:         models.HistoryTime(now),
		AQI:               a.Reading.AQI,
		PM25:              a.Reading.PM25,
		PM10:              a.Reading.PM10,
		CO:                a.Reading.CO,
		NO2:               a.Reading.NO2,
		ScannedBy:         user.Username,
		ScannedUsingModel: s.model,
		Message:           a.Message,
	}
	if err := s.adapter.PostHistory(ctx, entry); err != nil {
		return fmt.Errorf("post history: %w", mapAdapterError(err))
	}

	chat := models.NewChatMessage(a.Body(), user.Username, user.Role, now)
	if _, err := s.adapter.PostChat(ctx, chat); err != nil {
		return fmt.Errorf("post chat: %w", mapAdapterError(err))
	}

	tokens, err := s.adapter.ListDeviceTokens(ctx)
	if err != nil {
		return fmt.Errorf("list device tokens: %w", mapAdapterError(err))
	}

	if len(tokens) == 0 {
		log.Info().Msg("no device registered, push skipped")
	} else {
		err = s.adapter.SendNotification(ctx, models.PushNotification{
			To:    tokens,
			Title: models.NotificationTitle,
			Body:  "Admin: " + a.Body(),
			Sound: models.NotificationSound,
		})
		if err != nil {
			return fmt.Errorf("send notification: %w", mapAdapterError(err))
		}
	}

	log.Info().Int("devices", len(tokens)).Msg("announcement sent")

	s.bus.Publish(invalidation.History)
	s.bus.Publish(invalidation.Chat)
	return nil
}
