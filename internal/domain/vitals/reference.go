package vitals

// Parameter names a vital-sign parameter.
type Parameter string

const (
	ParamSystolic        Parameter = "systolic_pressure"
	ParamDiastolic       Parameter = "diastolic_pressure"
	ParamTemperature     Parameter = "temperature"
	ParamHeartRate       Parameter = "heart_rate"
	ParamRespiratoryRate Parameter = "respiratory_rate"
	ParamSaturation      Parameter = "oxygen_saturation"
	ParamGlycemia        Parameter = "glycemia"
)

// ReferenceRange is the inclusive clinical range for one parameter. A nil
// Max means the parameter only alerts on the low side.
type ReferenceRange struct {
	Parameter Parameter `json:"parameter"`
	Label     string    `json:"label"`
	Unit      string    `json:"unit"`
	Min       float64   `json:"min"`
	Max       *float64  `json:"max,omitempty"`
}

func maxOf(v float64) *float64 { return &v }

// ReferenceRanges is the single shared range table. Slice order is the
// fixed classification order, so deviation output is deterministic.
var ReferenceRanges = []ReferenceRange{
	{Parameter: ParamSystolic, Label: "Systolic pressure", Unit: "", Min: 90, Max: maxOf(120)},
	{Parameter: ParamDiastolic, Label: "Diastolic pressure", Unit: "", Min: 60, Max: maxOf(80)},
	{Parameter: ParamTemperature, Label: "Temperature", Unit: "°C", Min: 36, Max: maxOf(37.5)},
	{Parameter: ParamHeartRate, Label: "Heart rate", Unit: " bpm", Min: 60, Max: maxOf(100)},
	{Parameter: ParamRespiratoryRate, Label: "Respiratory rate", Unit: " irpm", Min: 12, Max: maxOf(20)},
	{Parameter: ParamSaturation, Label: "Oxygen saturation", Unit: "%", Min: 95, Max: nil},
	{Parameter: ParamGlycemia, Label: "Glycemia", Unit: " mg/dL", Min: 70, Max: maxOf(100)},
}

// RangeFor returns the reference range for a parameter.
func RangeFor(p Parameter) (ReferenceRange, bool) {
	for _, r := range ReferenceRanges {
		if r.Parameter == p {
			return r, true
		}
	}
	return ReferenceRange{}, false
}
