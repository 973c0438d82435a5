package ports

import (
	"context"

	"github.com/diasys/diasys-api/internal/core/domain"
)

// Response payload types. These mirror the public JSON contract exactly and
// are intentionally concrete: field names and types are fixed.

type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PredictionDetail struct {
	RiskLevel       string `json:"risk_level"`
	Status          string `json:"status"`
	Probability     int    `json:"probability"`
	ProbabilityText string `json:"probability_text"`
	ColorIndicator  string `json:"color_indicator"`
	Advice          string `json:"advice"`
}

type HealthMetrics struct {
	BMI           float64 `json:"bmi"`
	BMICategory   string  `json:"bmi_category"`
	Glucose       float64 `json:"glucose"`
	BloodPressure float64 `json:"blood_pressure"`
	Age           int     `json:"age"`
}

type InputSummary struct {
	Weight           float64 `json:"weight"`
	Height           float64 `json:"height"`
	Insulin          float64 `json:"insulin"`
	SkinThickness    float64 `json:"skin_thickness"`
	DiabetesPedigree float64 `json:"diabetes_pedigree"`
	Pregnancies      int     `json:"pregnancies"`
}

type ModelInfo struct {
	Accuracy  float64 `json:"accuracy"`
	ModelType string  `json:"model_type"`
}

// PredictionData is the assembled result of one prediction request.
type PredictionData struct {
	User          UserSummary      `json:"user"`
	Prediction    PredictionDetail `json:"prediction"`
	HealthMetrics HealthMetrics    `json:"health_metrics"`
	InputSummary  InputSummary     `json:"input_summary"`
	ModelInfo     ModelInfo        `json:"model_info"`
	Disclaimer    string           `json:"disclaimer"`
	Timestamp     string           `json:"timestamp"`
}

// PredictionService runs the validated-input → BMI → feature vector →
// classifier → response pipeline for an authenticated account.
type PredictionService interface {
	Predict(ctx context.Context, account *domain.Account, in domain.PredictionInput) (*PredictionData, error)
}

// PredictionRepository persists and reads back prediction history entries.
type PredictionRepository interface {
	Record(ctx context.Context, rec domain.PredictionRecord) error
	FindRecentByEmail(ctx context.Context, email string, limit int) ([]domain.PredictionRecord, error)
}
