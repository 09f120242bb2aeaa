package vitals

import (
	"fmt"
	"strconv"
	"strings"
)

// Deviation records one parameter found outside its reference range.
type Deviation struct {
	Parameter Parameter `json:"parameter"`
	Value     float64   `json:"value"`
	Bound     string    `json:"bound"` // "min" or "max"
	BoundValue float64  `json:"bound_value"`
}

// Description renders the deviation as an alert line, e.g.
// "Systolic pressure (150) above normal (120)".
func (d Deviation) Description() string {
	r, _ := RangeFor(d.Parameter)
	direction := "below"
	if d.Bound == "max" {
		direction = "above"
	}
	return fmt.Sprintf("%s (%s%s) %s normal (%s%s)",
		r.Label, formatValue(d.Value), r.Unit, direction, formatValue(d.BoundValue), r.Unit)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseBloodPressure decomposes a combined "120/80" string. Malformed
// input reports ok=false; callers must treat that as absent, never zero.
func ParseBloodPressure(s string) (systolic, diastolic int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	sys, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	dia, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return sys, dia, true
}

// Classify compares every present parameter of a measurement against the
// shared range table. Deviations come out in the table's fixed order. The
// function is pure and never panics on any well-typed input.
func Classify(m Measurement) []Deviation {
	values := make(map[Parameter]float64)

	if m.BloodPressure != nil {
		if sys, dia, ok := ParseBloodPressure(*m.BloodPressure); ok {
			values[ParamSystolic] = float64(sys)
			values[ParamDiastolic] = float64(dia)
		}
	}
	if m.Temperature != nil {
		values[ParamTemperature] = *m.Temperature
	}
	if m.HeartRate != nil {
		values[ParamHeartRate] = float64(*m.HeartRate)
	}
	if m.RespiratoryRate != nil {
		values[ParamRespiratoryRate] = float64(*m.RespiratoryRate)
	}
	if m.Saturation != nil {
		values[ParamSaturation] = float64(*m.Saturation)
	}
	if m.Glycemia != nil {
		values[ParamGlycemia] = float64(*m.Glycemia)
	}

	var deviations []Deviation
	for _, r := range ReferenceRanges {
		v, present := values[r.Parameter]
		if !present {
			continue
		}
		switch {
		case v < r.Min:
			deviations = append(deviations, Deviation{
				Parameter: r.Parameter, Value: v, Bound: "min", BoundValue: r.Min,
			})
		case r.Max != nil && v > *r.Max:
			deviations = append(deviations, Deviation{
				Parameter: r.Parameter, Value: v, Bound: "max", BoundValue: *r.Max,
			})
		}
	}
	return deviations
}
