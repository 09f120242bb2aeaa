package vitals

import (
	"time"

	"github.com/google/uuid"
)

// Measurement is one set of recorded vital signs. Every clinical field is
// optional; a measurement with all fields absent is still valid. Blood
// pressure is kept as a combined "systolic/diastolic" string for
// compatibility with the surrounding system.
type Measurement struct {
	ID              uuid.UUID  `json:"id"`
	PatientID       uuid.UUID  `json:"patient_id"`
	BloodPressure   *string    `json:"blood_pressure,omitempty"`
	Temperature     *float64   `json:"temperature,omitempty"`
	HeartRate       *int       `json:"heart_rate,omitempty"`
	RespiratoryRate *int       `json:"respiratory_rate,omitempty"`
	Saturation      *int       `json:"saturation,omitempty"`
	Glycemia        *int       `json:"glycemia,omitempty"`
	Weight          *float64   `json:"weight,omitempty"`
	Height          *float64   `json:"height,omitempty"`
	BMI             *float64   `json:"bmi,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
}
