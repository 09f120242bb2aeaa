package notification

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type mockRepo struct {
	notifications map[uuid.UUID]*Notification
	byMeasurement map[uuid.UUID]uuid.UUID
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		notifications: make(map[uuid.UUID]*Notification),
		byMeasurement: make(map[uuid.UUID]uuid.UUID),
	}
}

func (m *mockRepo) Create(_ context.Context, n *Notification) (bool, error) {
	if n.MeasurementID != nil {
		if _, dup := m.byMeasurement[*n.MeasurementID]; dup {
			return false, nil
		}
	}
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	m.notifications[n.ID] = n
	if n.MeasurementID != nil {
		m.byMeasurement[*n.MeasurementID] = n.ID
	}
	return true, nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Notification, error) {
	n, ok := m.notifications[id]
	if !ok {
		return nil, fmt.Errorf("notification not found")
	}
	return n, nil
}

func (m *mockRepo) ListVisible(_ context.Context, userID string, privileged bool, limit, offset int) ([]*Notification, int, error) {
	var items []*Notification
	for _, n := range m.notifications {
		if visible(n, userID, privileged) {
			items = append(items, n)
		}
	}
	return items, len(items), nil
}

func visible(n *Notification, userID string, privileged bool) bool {
	if n.TargetUserID == nil {
		return privileged
	}
	return *n.TargetUserID == userID
}

func (m *mockRepo) MarkRead(_ context.Context, id uuid.UUID, userID string, privileged bool) error {
	n, ok := m.notifications[id]
	if !ok || !visible(n, userID, privileged) {
		return fmt.Errorf("notification not found")
	}
	n.Read = true
	return nil
}

func (m *mockRepo) MarkAllRead(_ context.Context, userID string, privileged bool) error {
	for _, n := range m.notifications {
		if visible(n, userID, privileged) {
			n.Read = true
		}
	}
	return nil
}

type delivered struct {
	topic string
	n     *Notification
}

type mockChannel struct {
	deliveries []delivered
	err        error
}

func (c *mockChannel) Deliver(_ context.Context, topic string, n *Notification) error {
	if c.err != nil {
		return c.err
	}
	c.deliveries = append(c.deliveries, delivered{topic, n})
	return nil
}

func newTestService(repo Repository, channel DeliveryChannel) *Service {
	return NewService(repo, channel, zerolog.New(io.Discard))
}

func TestClinicalAlert_PersistsAndDelivers(t *testing.T) {
	repo := newMockRepo()
	channel := &mockChannel{}
	svc := newTestService(repo, channel)

	measurementID := uuid.New()
	err := svc.ClinicalAlert(context.Background(), measurementID, uuid.New(), "Maria Silva",
		[]string{"Temperature (38.2°C) above normal (37.5°C)"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.notifications) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(repo.notifications))
	}
	if len(channel.deliveries) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(channel.deliveries))
	}
	if channel.deliveries[0].topic != BroadcastTopic {
		t.Errorf("expected broadcast topic, got %q", channel.deliveries[0].topic)
	}
}

func TestClinicalAlert_RetryIsIdempotent(t *testing.T) {
	repo := newMockRepo()
	channel := &mockChannel{}
	svc := newTestService(repo, channel)

	measurementID := uuid.New()
	patientID := uuid.New()
	deviations := []string{"Glycemia (150 mg/dL) above normal (100 mg/dL)"}

	for i := 0; i < 3; i++ {
		if err := svc.ClinicalAlert(context.Background(), measurementID, patientID, "Jose Santos", deviations); err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i, err)
		}
	}

	if len(repo.notifications) != 1 {
		t.Fatalf("expected exactly 1 stored alert, got %d", len(repo.notifications))
	}
	if len(channel.deliveries) != 1 {
		t.Fatalf("duplicate insert must not deliver again, got %d deliveries", len(channel.deliveries))
	}
}

func TestRegistrationDecision_TargetedDelivery(t *testing.T) {
	repo := newMockRepo()
	channel := &mockChannel{}
	svc := newTestService(repo, channel)

	err := svc.RegistrationApproved(context.Background(), uuid.New(), "user-12", "Ana Costa", "caregiver")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(channel.deliveries) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(channel.deliveries))
	}
	if channel.deliveries[0].topic != "user:user-12" {
		t.Errorf("expected user topic, got %q", channel.deliveries[0].topic)
	}
}

func TestDeliveryFailureDoesNotFailWrite(t *testing.T) {
	repo := newMockRepo()
	channel := &mockChannel{err: fmt.Errorf("hub unreachable")}
	svc := newTestService(repo, channel)

	err := svc.RegistrationSubmitted(context.Background(), uuid.New(), "Ana Costa", "ana@example.com")
	if err != nil {
		t.Fatalf("delivery failure must not surface: %v", err)
	}
	if len(repo.notifications) != 1 {
		t.Fatal("notification write must survive delivery failure")
	}
}

func TestListVisible_AudienceScoping(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	if err := svc.ClinicalAlert(ctx, uuid.New(), uuid.New(), "Maria Silva",
		[]string{"Heart rate (120 bpm) above normal (100 bpm)"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.RegistrationApproved(ctx, uuid.New(), "user-5", "Ana Costa", "caregiver"); err != nil {
		t.Fatal(err)
	}

	// Privileged staff see the broadcast but not another user's targeted one.
	items, total, err := svc.ListVisible(ctx, "nurse-1", true, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || items[0].Kind != KindClinicalAlert {
		t.Errorf("privileged caller should see only the broadcast, got %d items", total)
	}

	// The target user sees their own but not the broadcast.
	items, total, err = svc.ListVisible(ctx, "user-5", false, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || items[0].Kind != KindRegistrationApproved {
		t.Errorf("target user should see only their notification, got %d items", total)
	}

	// An unprivileged bystander sees nothing.
	_, total, err = svc.ListVisible(ctx, "user-99", false, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("bystander should see nothing, got %d items", total)
	}
}

func TestMarkRead_Idempotent(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	if err := svc.ClinicalAlert(ctx, uuid.New(), uuid.New(), "Maria Silva",
		[]string{"Oxygen saturation (90%) below normal (95%)"}); err != nil {
		t.Fatal(err)
	}
	items, _, err := svc.ListVisible(ctx, "nurse-1", true, 20, 0)
	if err != nil || len(items) != 1 {
		t.Fatalf("setup failed: %v", err)
	}
	id := items[0].ID

	if err := svc.MarkRead(ctx, id, "nurse-1", true); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := svc.MarkRead(ctx, id, "nurse-1", true); err != nil {
		t.Fatalf("second mark must be idempotent: %v", err)
	}

	n, err := repo.GetByID(ctx, id)
	if err != nil || !n.Read {
		t.Error("read flag should remain true")
	}

	// Not visible to an unprivileged caller.
	if err := svc.MarkRead(ctx, id, "user-99", false); err == nil {
		t.Error("expected error marking a notification outside the caller's audience")
	}
}
