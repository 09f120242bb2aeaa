package registration

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists pending registrations.
type Repository interface {
	Create(ctx context.Context, r *PendingRegistration) error
	GetByID(ctx context.Context, id uuid.UUID) (*PendingRegistration, error)
	// List returns registrations, optionally filtered by status ("" = all).
	List(ctx context.Context, status Status, limit, offset int) ([]*PendingRegistration, int, error)
	// UpdateDecision writes the status transition out of pending.
	UpdateDecision(ctx context.Context, r *PendingRegistration) error
}
