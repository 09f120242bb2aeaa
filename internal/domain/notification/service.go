package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DeliveryChannel pushes a persisted notification toward connected
// clients. Delivery is best effort; the persisted row is the source of
// truth and a failed delivery never rolls it back.
type DeliveryChannel interface {
	Deliver(ctx context.Context, topic string, n *Notification) error
}

// BroadcastTopic is the delivery topic for notifications without a target
// user; privileged staff subscribe to it.
const BroadcastTopic = "notifications"

type Service struct {
	repo    Repository
	channel DeliveryChannel
	logger  zerolog.Logger
}

func NewService(repo Repository, channel DeliveryChannel, logger zerolog.Logger) *Service {
	return &Service{repo: repo, channel: channel, logger: logger}
}

// ClinicalAlert persists one broadcast alert for a deviating measurement
// and pushes it to the delivery channel. Retried submissions for the same
// measurement insert nothing and deliver nothing.
func (s *Service) ClinicalAlert(ctx context.Context, measurementID, patientID uuid.UUID, patientName string, deviations []string) error {
	n := ComposeClinicalAlert(measurementID, patientID, patientName, deviations)
	return s.persistAndDeliver(ctx, n)
}

// RegistrationSubmitted raises the broadcast pending-registration
// notification for administrators.
func (s *Service) RegistrationSubmitted(ctx context.Context, registrationID uuid.UUID, name, email string) error {
	return s.persistAndDeliver(ctx, ComposePendingRegistration(registrationID, name, email))
}

// RegistrationApproved notifies the requesting user of the approval and
// the granted role.
func (s *Service) RegistrationApproved(ctx context.Context, registrationID uuid.UUID, targetUserID, name, role string) error {
	return s.persistAndDeliver(ctx, ComposeRegistrationApproved(registrationID, targetUserID, name, role))
}

// RegistrationRejected notifies the requesting user of the rejection.
func (s *Service) RegistrationRejected(ctx context.Context, registrationID uuid.UUID, targetUserID, name string) error {
	return s.persistAndDeliver(ctx, ComposeRegistrationRejected(registrationID, targetUserID, name))
}

func (s *Service) persistAndDeliver(ctx context.Context, n *Notification) error {
	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	n.CreatedAt = time.Now()

	if s.channel != nil {
		if err := s.channel.Deliver(ctx, topicFor(n), n); err != nil {
			s.logger.Warn().Err(err).
				Str("notification_id", n.ID.String()).
				Str("kind", string(n.Kind)).
				Msg("notification delivery failed")
		}
	}
	return nil
}

func topicFor(n *Notification) string {
	if n.TargetUserID == nil {
		return BroadcastTopic
	}
	return "user:" + *n.TargetUserID
}

// ListVisible returns the caller's notifications: broadcasts when the
// caller holds a privileged role, plus notifications targeted at them.
func (s *Service) ListVisible(ctx context.Context, userID string, privileged bool, limit, offset int) ([]*Notification, int, error) {
	return s.repo.ListVisible(ctx, userID, privileged, limit, offset)
}

// MarkRead flips the read flag; repeating the call is a no-op.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID, userID string, privileged bool) error {
	return s.repo.MarkRead(ctx, id, userID, privileged)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string, privileged bool) error {
	return s.repo.MarkAllRead(ctx, userID, privileged)
}
