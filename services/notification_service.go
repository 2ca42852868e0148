// services/notification_service.go
package services

import (
	"time"

	"salonqueue-backend/models"
	"salonqueue-backend/repository"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSProvider sends one message to one phone number.
type SMSProvider interface {
	Send(to, body string) error
}

// TwilioProvider sends SMS through the Twilio REST API.
type TwilioProvider struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioProvider(accountSid, authToken, from string) *TwilioProvider {
	return &TwilioProvider{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (p *TwilioProvider) Send(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(p.from)
	params.SetBody(body)
	_, err := p.client.Api.CreateMessage(params)
	return err
}

// LogProvider stands in for Twilio when no credentials are configured.
type LogProvider struct {
	Log zerolog.Logger
}

func (p *LogProvider) Send(to, body string) error {
	p.Log.Info().Str("to", to).Str("body", body).Msg("sms (stub)")
	return nil
}

// NotificationService turns queue events into persisted notifications
// and best-effort SMS delivery. It implements Dispatcher and never
// surfaces delivery failures to the engine; they end up in the log and
// on the notification row.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	sms           SMSProvider
	log           zerolog.Logger
}

func NewNotificationService(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	sms SMSProvider,
	log zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		sms:           sms,
		log:           log,
	}
}

func (s *NotificationService) Dispatch(event Event) {
	notification := models.Notification{
		UserID:  event.UserID,
		Kind:    event.Kind,
		Message: event.Message,
		Status:  "sent",
		Channel: "sms",
		SentAt:  time.Now(),
	}

	user, err := s.users.ByID(event.UserID)
	switch {
	case err != nil:
		notification.Status = "failed"
		notification.ErrorMessage = err.Error()
		s.log.Error().Err(err).
			Str("user_id", event.UserID.String()).
			Str("kind", event.Kind).
			Msg("notification recipient lookup failed")
	case user.Phone == "":
		notification.Channel = "log"
		s.log.Info().
			Str("user_id", user.ID.String()).
			Str("kind", event.Kind).
			Str("message", event.Message).
			Msg("no phone on file; notification logged only")
	default:
		if err := s.sms.Send(user.Phone, event.Message); err != nil {
			notification.Status = "failed"
			notification.ErrorMessage = err.Error()
			s.log.Error().Err(err).
				Str("to", user.Phone).
				Str("kind", event.Kind).
				Msg("sms delivery failed")
		}
	}

	if err := s.notifications.Create(&notification); err != nil {
		s.log.Error().Err(err).
			Str("kind", event.Kind).
			Msg("failed to persist notification")
	}
}
