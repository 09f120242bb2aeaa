package notification

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestComposeClinicalAlert(t *testing.T) {
	measurementID := uuid.New()
	patientID := uuid.New()
	deviations := []string{
		"Systolic pressure (150) above normal (120)",
		"Diastolic pressure (95) above normal (80)",
		"Temperature (38.2°C) above normal (37.5°C)",
	}

	n := ComposeClinicalAlert(measurementID, patientID, "Maria Silva", deviations)

	if n.Kind != KindClinicalAlert {
		t.Errorf("expected clinical_alert, got %s", n.Kind)
	}
	if n.Title != "Vital Signs Alert" {
		t.Errorf("unexpected title %q", n.Title)
	}
	if n.TargetUserID != nil {
		t.Error("clinical alerts must be broadcast")
	}
	if n.MeasurementID == nil || *n.MeasurementID != measurementID {
		t.Error("expected measurement id for idempotency")
	}

	want := "Patient: Maria Silva\n" + strings.Join(deviations, "\n")
	if n.Message != want {
		t.Errorf("message mismatch:\ngot:  %q\nwant: %q", n.Message, want)
	}

	var payload ClinicalAlertPayload
	if err := json.Unmarshal(n.Payload, &payload); err != nil {
		t.Fatalf("payload unmarshal: %v", err)
	}
	if payload.PatientID != patientID || len(payload.Deviations) != 3 {
		t.Errorf("unexpected payload %+v", payload)
	}
}

func TestComposePendingRegistration(t *testing.T) {
	regID := uuid.New()
	n := ComposePendingRegistration(regID, "Ana Costa", "ana@example.com")

	if n.Kind != KindPendingRegistration {
		t.Errorf("expected pending_registration, got %s", n.Kind)
	}
	if n.TargetUserID != nil {
		t.Error("pending registrations must be broadcast")
	}
	if !strings.Contains(n.Message, "Ana Costa") || !strings.Contains(n.Message, "ana@example.com") {
		t.Errorf("message missing requester identity: %q", n.Message)
	}
}

func TestComposeRegistrationDecisions(t *testing.T) {
	regID := uuid.New()

	approved := ComposeRegistrationApproved(regID, "user-9", "Ana Costa", "caregiver")
	if approved.Kind != KindRegistrationApproved {
		t.Errorf("expected registration_approved, got %s", approved.Kind)
	}
	if approved.TargetUserID == nil || *approved.TargetUserID != "user-9" {
		t.Error("approval must target the requesting user")
	}
	if !strings.Contains(approved.Message, "caregiver") {
		t.Errorf("approval message missing granted role: %q", approved.Message)
	}

	rejected := ComposeRegistrationRejected(regID, "user-9", "Ana Costa")
	if rejected.Kind != KindRegistrationRejected {
		t.Errorf("expected registration_rejected, got %s", rejected.Kind)
	}
	if rejected.TargetUserID == nil || *rejected.TargetUserID != "user-9" {
		t.Error("rejection must target the requesting user")
	}
}
