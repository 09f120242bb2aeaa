package report

import (
	"math"

	"github.com/macena-health/care-api/internal/domain/scheduling"
	"github.com/macena-health/care-api/internal/domain/vitals"
)

// AggregateVitalSigns computes per-parameter statistics over a record set.
// Absent fields are skipped, never zero-filled; a parameter with no values
// stays nil. Means are rounded to the source field's precision: integers
// for pressure, heart rate, saturation and glycemia, one decimal for
// temperature. Deterministic for a fixed input set.
func AggregateVitalSigns(records []*vitals.Measurement) *VitalSignsStats {
	var systolic, diastolic, temperature, heartRate, saturation, glycemia []float64

	for _, m := range records {
		if m.BloodPressure != nil {
			if sys, dia, ok := vitals.ParseBloodPressure(*m.BloodPressure); ok {
				systolic = append(systolic, float64(sys))
				diastolic = append(diastolic, float64(dia))
			}
		}
		if m.Temperature != nil {
			temperature = append(temperature, *m.Temperature)
		}
		if m.HeartRate != nil {
			heartRate = append(heartRate, float64(*m.HeartRate))
		}
		if m.Saturation != nil {
			saturation = append(saturation, float64(*m.Saturation))
		}
		if m.Glycemia != nil {
			glycemia = append(glycemia, float64(*m.Glycemia))
		}
	}

	return &VitalSignsStats{
		Total:       len(records),
		Systolic:    paramStats(systolic, 0),
		Diastolic:   paramStats(diastolic, 0),
		Temperature: paramStats(temperature, 1),
		HeartRate:   paramStats(heartRate, 0),
		Saturation:  paramStats(saturation, 0),
		Glycemia:    paramStats(glycemia, 0),
	}
}

// AggregateAppointments counts appointments per type.
func AggregateAppointments(records []*scheduling.Appointment) *AppointmentStats {
	stats := &AppointmentStats{
		Total:  len(records),
		ByType: make(map[string]int),
	}
	for _, a := range records {
		stats.ByType[string(a.Type)]++
	}
	return stats
}

// paramStats reduces one parameter's values; nil for an empty set, never a
// zeroed struct.
func paramStats(values []float64, decimals int) *ParamStats {
	if len(values) == 0 {
		return nil
	}
	sum, min, max := 0.0, values[0], values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return &ParamStats{
		Count: len(values),
		Mean:  roundTo(sum/float64(len(values)), decimals),
		Min:   min,
		Max:   max,
	}
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
