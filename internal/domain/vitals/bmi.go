package vitals

import "math"

// BMIResult is a computed body mass index with its classification band.
type BMIResult struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"`
}

// ComputeBMI derives BMI from weight in kilograms and height in
// centimeters. The result is absent when height is not positive. The value
// is rounded half away from zero to one decimal; the classification uses
// the rounded value.
func ComputeBMI(weightKg, heightCm float64) (BMIResult, bool) {
	if heightCm <= 0 {
		return BMIResult{}, false
	}
	meters := heightCm / 100
	bmi := math.Round(weightKg/(meters*meters)*10) / 10
	return BMIResult{Value: bmi, Classification: classifyBMI(bmi)}, true
}

func classifyBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	case bmi < 35:
		return "obesity grade I"
	case bmi < 40:
		return "obesity grade II"
	default:
		return "obesity grade III"
	}
}
