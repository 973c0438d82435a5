package domain

import (
	"errors"
	"fmt"
	"time"
)

// FeatureCount is the number of inputs the trained classifier expects.
const FeatureCount = 8

// FeatureVector is the classifier input in its contractual order:
// pregnancies, glucose, blood pressure, skin thickness, insulin, BMI,
// pedigree, age. The trained model was fitted against exactly this order;
// reordering silently corrupts predictions.
type FeatureVector [FeatureCount]float64

// PredictionInput carries the nine raw measurements submitted by a client.
// Range validation happens at the transport edge; BMI is derived from weight
// and height before the vector is built.
type PredictionInput struct {
	Pregnancies   int
	Glucose       float64
	BloodPressure float64
	SkinThickness float64
	Insulin       float64
	Weight        float64
	Height        float64
	Pedigree      float64
	Age           int
}

// Vector assembles the feature vector with the derived BMI in position six.
func (in PredictionInput) Vector(bmi float64) FeatureVector {
	return FeatureVector{
		float64(in.Pregnancies),
		in.Glucose,
		in.BloodPressure,
		in.SkinThickness,
		in.Insulin,
		bmi,
		in.Pedigree,
		float64(in.Age),
	}
}

// Risk levels and colour indicators as rendered to clients.
const (
	RiskHigh = "TINGGI"
	RiskLow  = "RENDAH"

	ColorHigh = "red"
	ColorLow  = "green"

	StatusPositive = "Terindikasi Diabetes"
	StatusNegative = "Tidak Terindikasi Diabetes"
)

var ErrModelUnavailable = errors.New("model unavailable")
var ErrInference = errors.New("inference failed")

// BMIOutOfRangeError reports a derived BMI outside the plausible [10,70]
// band even though weight and height individually passed validation.
type BMIOutOfRangeError struct {
	BMI float64
}

func (e *BMIOutOfRangeError) Error() string {
	return fmt.Sprintf("BMI tidak valid (%.1f). Periksa berat dan tinggi.", e.BMI)
}

const (
	bmiMin = 10
	bmiMax = 70
)

// DeriveBMI computes weight/height² and enforces the cross-field bound the
// per-field checks cannot express.
func DeriveBMI(weight, height float64) (float64, error) {
	bmi := weight / (height * height)
	if bmi < bmiMin || bmi > bmiMax {
		return 0, &BMIOutOfRangeError{BMI: bmi}
	}
	return bmi, nil
}

// CategorizeBMI maps a BMI value onto the standard WHO bands.
// Thresholds are ordered; first match wins.
func CategorizeBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// PredictionRecord is a persisted history entry for one completed prediction.
type PredictionRecord struct {
	Email       string    `json:"-"`
	RiskLevel   string    `json:"risk_level"`
	Probability float64   `json:"probability"`
	BMI         float64   `json:"bmi"`
	CreatedAt   time.Time `json:"created_at"`
}
