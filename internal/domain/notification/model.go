package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates what a notification is about.
type Kind string

const (
	KindPendingRegistration  Kind = "pending_registration"
	KindRegistrationApproved Kind = "registration_approved"
	KindRegistrationRejected Kind = "registration_rejected"
	KindClinicalAlert        Kind = "clinical_alert"
)

// Notification is the durable record of an alert or workflow event. A nil
// TargetUserID means broadcast: visible to every privileged role. A
// targeted notification is visible only to its target user.
type Notification struct {
	ID            uuid.UUID       `json:"id"`
	Kind          Kind            `json:"kind"`
	Title         string          `json:"title"`
	Message       string          `json:"message"`
	TargetUserID  *string         `json:"target_user_id,omitempty"`
	MeasurementID *uuid.UUID      `json:"measurement_id,omitempty"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	Read          bool            `json:"read"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ClinicalAlertPayload is the structured payload of a clinical_alert.
type ClinicalAlertPayload struct {
	MeasurementID uuid.UUID `json:"measurement_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	Deviations    []string  `json:"deviations"`
}

// RegistrationPayload is the structured payload of the registration kinds.
type RegistrationPayload struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role,omitempty"`
}
