package notification

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// ComposeClinicalAlert builds the single broadcast notification for a
// measurement whose classification produced deviations. The message is the
// patient line followed by every deviation description, newline-joined.
func ComposeClinicalAlert(measurementID, patientID uuid.UUID, patientName string, deviations []string) *Notification {
	payload, _ := json.Marshal(ClinicalAlertPayload{
		MeasurementID: measurementID,
		PatientID:     patientID,
		Deviations:    deviations,
	})

	lines := append([]string{"Patient: " + patientName}, deviations...)
	mid := measurementID
	return &Notification{
		Kind:          KindClinicalAlert,
		Title:         "Vital Signs Alert",
		Message:       strings.Join(lines, "\n"),
		MeasurementID: &mid,
		Payload:       payload,
	}
}

// ComposePendingRegistration builds the broadcast notification raised when
// someone requests access.
func ComposePendingRegistration(registrationID uuid.UUID, name, email string) *Notification {
	payload, _ := json.Marshal(RegistrationPayload{
		RegistrationID: registrationID,
		Name:           name,
		Email:          email,
	})
	return &Notification{
		Kind:    KindPendingRegistration,
		Title:   "New Registration Request",
		Message: name + " (" + email + ") requested access",
		Payload: payload,
	}
}

// ComposeRegistrationApproved builds the notification targeted at the
// approved user.
func ComposeRegistrationApproved(registrationID uuid.UUID, targetUserID, name, role string) *Notification {
	payload, _ := json.Marshal(RegistrationPayload{
		RegistrationID: registrationID,
		Name:           name,
		Role:           role,
	})
	target := targetUserID
	return &Notification{
		Kind:         KindRegistrationApproved,
		Title:        "Registration Approved",
		Message:      "Your registration was approved with the " + role + " role",
		TargetUserID: &target,
		Payload:      payload,
	}
}

// ComposeRegistrationRejected builds the notification targeted at the
// rejected user.
func ComposeRegistrationRejected(registrationID uuid.UUID, targetUserID, name string) *Notification {
	payload, _ := json.Marshal(RegistrationPayload{
		RegistrationID: registrationID,
		Name:           name,
	})
	target := targetUserID
	return &Notification{
		Kind:         KindRegistrationRejected,
		Title:        "Registration Rejected",
		Message:      "Your registration request was rejected",
		TargetUserID: &target,
		Payload:      payload,
	}
}
