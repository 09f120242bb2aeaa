package vitals

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists vital-sign measurements.
type Repository interface {
	Create(ctx context.Context, m *Measurement) error
	GetByID(ctx context.Context, id uuid.UUID) (*Measurement, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, from, to *time.Time, limit, offset int) ([]*Measurement, int, error)
	// ListAllInWindow returns every measurement for a patient in the
	// window, unpaginated; report aggregation consumes it.
	ListAllInWindow(ctx context.Context, patientID uuid.UUID, from, to *time.Time) ([]*Measurement, error)
}
