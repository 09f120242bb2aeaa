package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/macena-health/care-api/internal/domain/patient"
	"github.com/macena-health/care-api/internal/domain/scheduling"
	"github.com/macena-health/care-api/internal/domain/vitals"
)

// MeasurementSource reads the raw vital-sign records a report snapshots.
// The vitals repository satisfies it.
type MeasurementSource interface {
	ListAllInWindow(ctx context.Context, patientID uuid.UUID, from, to *time.Time) ([]*vitals.Measurement, error)
}

// AppointmentSource reads the raw appointments a report snapshots. The
// scheduling repository satisfies it.
type AppointmentSource interface {
	ListAllInWindow(ctx context.Context, patientID uuid.UUID, from, to *time.Time) ([]*scheduling.Appointment, error)
}

// PatientSource resolves the patient snapshot. The patient service
// satisfies it.
type PatientSource interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// Input carries the user-chosen report parameters. Period bounds are
// day-level; the end date is inclusive through end of day.
type Input struct {
	Title       string     `json:"title"`
	PatientID   uuid.UUID  `json:"patient_id"`
	Subtype     Subtype    `json:"subtype"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

type Service struct {
	repo         Repository
	measurements MeasurementSource
	appointments AppointmentSource
	patients     PatientSource
}

func NewService(repo Repository, measurements MeasurementSource, appointments AppointmentSource, patients PatientSource) *Service {
	return &Service{
		repo:         repo,
		measurements: measurements,
		appointments: appointments,
		patients:     patients,
	}
}

// Create aggregates the matching records, composes the frozen payload and
// inserts the report.
func (s *Service) Create(ctx context.Context, in Input, createdBy string) (*Report, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	payload, err := s.compose(ctx, in)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Title:       in.Title,
		PatientID:   in.PatientID,
		Subtype:     in.Subtype,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		Notes:       in.Notes,
		Payload:     *payload,
		CreatedBy:   createdBy,
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// Update re-aggregates in full under the new parameters and swaps the
// payload in a single write.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Report, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	payload, err := s.compose(ctx, in)
	if err != nil {
		return nil, err
	}

	rep.Title = in.Title
	rep.PatientID = in.PatientID
	rep.Subtype = in.Subtype
	rep.PeriodStart = in.PeriodStart
	rep.PeriodEnd = in.PeriodEnd
	rep.Notes = in.Notes
	rep.Payload = *payload
	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Report, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// compose runs the aggregation and wraps it with the patient snapshot.
func (s *Service) compose(ctx context.Context, in Input) (*Payload, error) {
	p, err := s.patients.Get(ctx, in.PatientID)
	if err != nil {
		return nil, fmt.Errorf("patient lookup: %w", err)
	}

	from, to := queryWindow(in.PeriodStart, in.PeriodEnd)
	payload := &Payload{
		Patient: PatientSnapshot{
			ID:       p.ID,
			Name:     p.Name,
			Category: string(p.Category),
		},
		ComputedAt: time.Now(),
	}

	switch in.Subtype {
	case SubtypeVitalSigns:
		records, err := s.measurements.ListAllInWindow(ctx, in.PatientID, from, to)
		if err != nil {
			return nil, err
		}
		payload.VitalSigns = records
		payload.VitalSignsStats = AggregateVitalSigns(records)
	case SubtypeAppointments:
		records, err := s.appointments.ListAllInWindow(ctx, in.PatientID, from, to)
		if err != nil {
			return nil, err
		}
		payload.Appointments = records
		payload.AppointmentStats = AggregateAppointments(records)
	}
	return payload, nil
}

// queryWindow turns day-level period bounds into query bounds; the end
// date is inclusive through end of day.
func queryWindow(start, end *time.Time) (*time.Time, *time.Time) {
	var to *time.Time
	if end != nil {
		t := end.Add(24 * time.Hour)
		to = &t
	}
	return start, to
}

func validateInput(in Input) error {
	if in.Title == "" {
		return fmt.Errorf("title is required")
	}
	if in.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if in.Subtype != SubtypeVitalSigns && in.Subtype != SubtypeAppointments {
		return fmt.Errorf("invalid subtype: %s", in.Subtype)
	}
	if in.PeriodStart != nil && in.PeriodEnd != nil && in.PeriodEnd.Before(*in.PeriodStart) {
		return fmt.Errorf("period_end before period_start")
	}
	return nil
}
