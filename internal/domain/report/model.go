package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/macena-health/care-api/internal/domain/scheduling"
	"github.com/macena-health/care-api/internal/domain/vitals"
)

// Subtype selects which records a report covers.
type Subtype string

const (
	SubtypeVitalSigns   Subtype = "vital_signs"
	SubtypeAppointments Subtype = "appointments"
)

// Report is a point-in-time snapshot over a patient's records. Its payload
// is recomputed wholesale on create and on edit, never lazily, so two
// reports with identical parameters can legitimately differ when the
// underlying data changed between them.
type Report struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	PatientID   uuid.UUID  `json:"patient_id"`
	Subtype     Subtype    `json:"subtype"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Payload     Payload    `json:"payload"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PatientSnapshot freezes patient identity at computation time.
type PatientSnapshot struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// Payload is the frozen snapshot: the matching raw records plus their
// derived statistics.
type Payload struct {
	Patient          PatientSnapshot           `json:"patient"`
	VitalSigns       []*vitals.Measurement     `json:"vital_signs,omitempty"`
	Appointments     []*scheduling.Appointment `json:"appointments,omitempty"`
	VitalSignsStats  *VitalSignsStats          `json:"vital_signs_statistics,omitempty"`
	AppointmentStats *AppointmentStats         `json:"appointment_statistics,omitempty"`
	ComputedAt       time.Time                 `json:"computed_at"`
}

// ParamStats summarizes one numeric parameter. Absent entirely (nil
// pointer in the owner) when no values qualified.
type ParamStats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// VitalSignsStats carries per-parameter statistics. Total counts matching
// records regardless of which fields were present.
type VitalSignsStats struct {
	Total       int         `json:"total"`
	Systolic    *ParamStats `json:"systolic,omitempty"`
	Diastolic   *ParamStats `json:"diastolic,omitempty"`
	Temperature *ParamStats `json:"temperature,omitempty"`
	HeartRate   *ParamStats `json:"heart_rate,omitempty"`
	Saturation  *ParamStats `json:"saturation,omitempty"`
	Glycemia    *ParamStats `json:"glycemia,omitempty"`
}

// AppointmentStats counts appointments per type.
type AppointmentStats struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}
