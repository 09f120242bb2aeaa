package report

import (
	"encoding/json"
	"testing"

	"github.com/macena-health/care-api/internal/domain/scheduling"
	"github.com/macena-health/care-api/internal/domain/vitals"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestAggregateVitalSigns(t *testing.T) {
	records := []*vitals.Measurement{
		{BloodPressure: strPtr("120/80"), Temperature: floatPtr(36.5), HeartRate: intPtr(70), Glycemia: intPtr(90)},
		{BloodPressure: strPtr("130/85"), Temperature: floatPtr(37.0), HeartRate: intPtr(80)},
		{Saturation: intPtr(97)},
	}

	stats := AggregateVitalSigns(records)

	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.Systolic == nil || stats.Systolic.Count != 2 {
		t.Fatalf("expected 2 systolic values, got %+v", stats.Systolic)
	}
	if stats.Systolic.Mean != 125 || stats.Systolic.Min != 120 || stats.Systolic.Max != 130 {
		t.Errorf("systolic stats wrong: %+v", stats.Systolic)
	}
	if stats.Diastolic.Mean != 83 {
		// (80+85)/2 = 82.5, integer parameter rounds to 83
		t.Errorf("expected diastolic mean 83, got %v", stats.Diastolic.Mean)
	}
	if stats.Temperature.Mean != 36.8 {
		// (36.5+37.0)/2 = 36.75, temperature rounds to one decimal
		t.Errorf("expected temperature mean 36.8, got %v", stats.Temperature.Mean)
	}
	if stats.HeartRate.Mean != 75 {
		t.Errorf("expected heart rate mean 75, got %v", stats.HeartRate.Mean)
	}
	if stats.Saturation == nil || stats.Saturation.Count != 1 || stats.Saturation.Mean != 97 {
		t.Errorf("saturation stats wrong: %+v", stats.Saturation)
	}
	if stats.Glycemia == nil || stats.Glycemia.Count != 1 {
		t.Errorf("glycemia stats wrong: %+v", stats.Glycemia)
	}
}

func TestAggregateVitalSigns_EmptySet(t *testing.T) {
	stats := AggregateVitalSigns(nil)

	if stats.Total != 0 {
		t.Errorf("expected total 0, got %d", stats.Total)
	}
	for name, s := range map[string]*ParamStats{
		"systolic": stats.Systolic, "diastolic": stats.Diastolic,
		"temperature": stats.Temperature, "heart_rate": stats.HeartRate,
		"saturation": stats.Saturation, "glycemia": stats.Glycemia,
	} {
		if s != nil {
			t.Errorf("%s: expected nil stats for empty set, got %+v", name, s)
		}
	}
}

func TestAggregateVitalSigns_MalformedBloodPressureSkipped(t *testing.T) {
	records := []*vitals.Measurement{
		{BloodPressure: strPtr("garbage")},
		{BloodPressure: strPtr("110/70")},
	}
	stats := AggregateVitalSigns(records)

	if stats.Total != 2 {
		t.Errorf("total counts records regardless of field presence, got %d", stats.Total)
	}
	if stats.Systolic == nil || stats.Systolic.Count != 1 {
		t.Errorf("malformed blood pressure must be skipped, got %+v", stats.Systolic)
	}
}

func TestAggregateVitalSigns_Idempotent(t *testing.T) {
	records := []*vitals.Measurement{
		{BloodPressure: strPtr("118/76"), Temperature: floatPtr(36.6), HeartRate: intPtr(64)},
		{Temperature: floatPtr(37.2), Glycemia: intPtr(104)},
	}

	first, err := json.Marshal(AggregateVitalSigns(records))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(AggregateVitalSigns(records))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("aggregation over the same input must be byte-identical")
	}
}

func TestAggregateAppointments(t *testing.T) {
	records := []*scheduling.Appointment{
		{Type: scheduling.TypeVisit},
		{Type: scheduling.TypeVisit},
		{Type: scheduling.TypeExam},
		{Type: scheduling.TypeConsultation},
	}
	stats := AggregateAppointments(records)

	if stats.Total != 4 {
		t.Errorf("expected total 4, got %d", stats.Total)
	}
	if stats.ByType["visit"] != 2 || stats.ByType["exam"] != 1 || stats.ByType["consultation"] != 1 {
		t.Errorf("unexpected counts: %v", stats.ByType)
	}
	if _, ok := stats.ByType["procedure"]; ok {
		t.Error("types with no appointments should not appear")
	}
}

func TestAggregateAppointments_EmptySet(t *testing.T) {
	stats := AggregateAppointments(nil)
	if stats.Total != 0 || len(stats.ByType) != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}
