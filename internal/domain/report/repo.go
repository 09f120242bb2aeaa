package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows a report listing.
type Filter struct {
	Title       string
	PatientID   *uuid.UUID
	Subtype     Subtype
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Repository persists reports. Create and Update write the full row
// including the payload in one statement, so the snapshot swap is atomic.
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	Update(ctx context.Context, r *Report) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Report, int, error)
}
