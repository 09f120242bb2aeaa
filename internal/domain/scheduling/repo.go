package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists appointments.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, from, to *time.Time, limit, offset int) ([]*Appointment, int, error)
	// ListAllInWindow returns every appointment for a patient in the
	// window, unpaginated; report aggregation consumes it.
	ListAllInWindow(ctx context.Context, patientID uuid.UUID, from, to *time.Time) ([]*Appointment, error)
}
