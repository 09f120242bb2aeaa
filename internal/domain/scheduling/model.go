package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType categorizes an appointment.
type AppointmentType string

const (
	TypeVisit        AppointmentType = "visit"
	TypeConsultation AppointmentType = "consultation"
	TypeProcedure    AppointmentType = "procedure"
	TypeExam         AppointmentType = "exam"
	TypeOther        AppointmentType = "other"
)

// ValidTypes enumerates the accepted appointment types.
var ValidTypes = map[AppointmentType]bool{
	TypeVisit:        true,
	TypeConsultation: true,
	TypeProcedure:    true,
	TypeExam:         true,
	TypeOther:        true,
}

// Appointment is a scheduled care event for a patient. The date is
// day-level; the start time is kept separately as "HH:MM".
type Appointment struct {
	ID            uuid.UUID       `json:"id"`
	PatientID     uuid.UUID       `json:"patient_id"`
	ScheduledDate time.Time       `json:"scheduled_date"`
	ScheduledTime *string         `json:"scheduled_time,omitempty"`
	Type          AppointmentType `json:"type"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
