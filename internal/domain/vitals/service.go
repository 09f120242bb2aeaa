package vitals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Alerter durably records a clinical alert for a measurement whose
// classification produced deviations. Implementations must be idempotent
// per measurement id.
type Alerter interface {
	ClinicalAlert(ctx context.Context, measurementID, patientID uuid.UUID, patientName string, deviations []string) error
}

// PatientDirectory resolves patient identity for alert composition.
type PatientDirectory interface {
	PatientName(ctx context.Context, id uuid.UUID) (string, error)
}

// RecordInput is the submission shape for a new measurement. Blood
// pressure can arrive as separate systolic/diastolic values or as a
// combined "120/80" string.
type RecordInput struct {
	Systolic        *int     `json:"systolic,omitempty"`
	Diastolic       *int     `json:"diastolic,omitempty"`
	BloodPressure   *string  `json:"blood_pressure,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	HeartRate       *int     `json:"heart_rate,omitempty"`
	RespiratoryRate *int     `json:"respiratory_rate,omitempty"`
	Saturation      *int     `json:"saturation,omitempty"`
	Glycemia        *int     `json:"glycemia,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

type Service struct {
	repo      Repository
	directory PatientDirectory
	alerter   Alerter
	logger    zerolog.Logger
}

func NewService(repo Repository, directory PatientDirectory, alerter Alerter, logger zerolog.Logger) *Service {
	return &Service{repo: repo, directory: directory, alerter: alerter, logger: logger}
}

// Record validates and persists a measurement, classifies it, and raises a
// broadcast clinical alert when any parameter deviates. The measurement
// write is durable before alerting; an alert failure does not undo it.
func (s *Service) Record(ctx context.Context, patientID uuid.UUID, in RecordInput, createdBy string) (*Measurement, []Deviation, error) {
	if patientID == uuid.Nil {
		return nil, nil, fmt.Errorf("patient id is required")
	}
	patientName, err := s.directory.PatientName(ctx, patientID)
	if err != nil {
		return nil, nil, fmt.Errorf("patient lookup: %w", err)
	}

	bp, err := combinedBloodPressure(in)
	if err != nil {
		return nil, nil, err
	}

	m := &Measurement{
		PatientID:       patientID,
		BloodPressure:   bp,
		Temperature:     in.Temperature,
		HeartRate:       in.HeartRate,
		RespiratoryRate: in.RespiratoryRate,
		Saturation:      in.Saturation,
		Glycemia:        in.Glycemia,
		Weight:          in.Weight,
		Height:          in.Height,
		Notes:           in.Notes,
		CreatedBy:       createdBy,
	}

	if in.Weight != nil && in.Height != nil {
		if result, ok := ComputeBMI(*in.Weight, *in.Height); ok {
			m.BMI = &result.Value
		}
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, nil, err
	}

	deviations := Classify(*m)
	if len(deviations) > 0 && s.alerter != nil {
		descriptions := make([]string, len(deviations))
		for i, d := range deviations {
			descriptions[i] = d.Description()
		}
		if err := s.alerter.ClinicalAlert(ctx, m.ID, patientID, patientName, descriptions); err != nil {
			s.logger.Error().Err(err).
				Str("measurement_id", m.ID.String()).
				Msg("clinical alert failed")
		}
	}

	return m, deviations, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Measurement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, from, to *time.Time, limit, offset int) ([]*Measurement, int, error) {
	return s.repo.ListByPatient(ctx, patientID, from, to, limit, offset)
}

// combinedBloodPressure normalizes the two submission shapes into one
// "systolic/diastolic" string, rejecting malformed combined input.
func combinedBloodPressure(in RecordInput) (*string, error) {
	if in.BloodPressure != nil {
		if _, _, ok := ParseBloodPressure(*in.BloodPressure); !ok {
			return nil, fmt.Errorf("malformed blood pressure: %s", *in.BloodPressure)
		}
		return in.BloodPressure, nil
	}
	if in.Systolic != nil && in.Diastolic != nil {
		bp := fmt.Sprintf("%d/%d", *in.Systolic, *in.Diastolic)
		return &bp, nil
	}
	return nil, nil
}
