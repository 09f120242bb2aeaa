package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists notifications.
type Repository interface {
	// Create inserts a notification. For clinical alerts carrying a
	// measurement id, a second insert for the same measurement is a no-op
	// and reports created=false.
	Create(ctx context.Context, n *Notification) (created bool, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	// ListVisible returns the caller's audience-scoped notifications:
	// broadcasts when privileged, plus the caller's targeted ones.
	ListVisible(ctx context.Context, userID string, privileged bool, limit, offset int) ([]*Notification, int, error)
	// MarkRead flips the read flag on one visible notification. Marking
	// an already-read notification is a no-op, not an error.
	MarkRead(ctx context.Context, id uuid.UUID, userID string, privileged bool) error
	MarkAllRead(ctx context.Context, userID string, privileged bool) error
}
