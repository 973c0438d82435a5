package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/diasys/diasys-api/internal/core/domain"
	"github.com/diasys/diasys-api/internal/core/ports"
)

// ResultCache abstracts the short-lived prediction response cache (Redis).
// A nil error with ok=false is a miss; cache failures must degrade to a
// miss, never fail the request.
type ResultCache interface {
	Get(ctx context.Context, email string, in domain.PredictionInput) (*ports.PredictionData, bool, error)
	Set(ctx context.Context, email string, in domain.PredictionInput, data *ports.PredictionData) error
}

// Recorder receives completed predictions for asynchronous persistence.
type Recorder interface {
	Enqueue(rec domain.PredictionRecord)
}

// PredictionService runs the inference pipeline: derived BMI, fixed-order
// feature vector, classifier call, risk classification, response assembly.
type PredictionService struct {
	predictor ports.Predictor
	cache     ResultCache
	recorder  Recorder
	log       zerolog.Logger
}

func NewPredictionService(predictor ports.Predictor, cache ResultCache, recorder Recorder, log zerolog.Logger) *PredictionService {
	return &PredictionService{predictor: predictor, cache: cache, recorder: recorder, log: log}
}

func (s *PredictionService) Predict(ctx context.Context, account *domain.Account, in domain.PredictionInput) (*ports.PredictionData, error) {
	// Availability is checked before any feature construction so an unloaded
	// model fails fast with no side effects.
	if !s.predictor.Loaded() {
		return nil, domain.ErrModelUnavailable
	}

	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, account.Email, in); err != nil {
			s.log.Warn().Err(err).Msg("prediction cache read failed")
		} else if ok {
			s.log.Debug().Str("email", account.Email).Msg("prediction served from cache")
			// A cached response is still a completed prediction and lands
			// in the history exactly like a fresh one.
			s.record(account.Email, data)
			return data, nil
		}
	}

	bmi, err := domain.DeriveBMI(in.Weight, in.Height)
	if err != nil {
		return nil, err
	}

	label, probs, err := s.predictor.Predict(in.Vector(bmi))
	if err != nil {
		s.log.Error().Err(err).Str("email", account.Email).Msg("inference failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrInference, err)
	}

	data := s.assemble(account, in, bmi, label, probs)

	s.record(account.Email, data)
	if s.cache != nil {
		if err := s.cache.Set(ctx, account.Email, in, data); err != nil {
			s.log.Warn().Err(err).Msg("prediction cache write failed")
		}
	}

	s.log.Info().
		Str("email", account.Email).
		Str("risk_level", data.Prediction.RiskLevel).
		Int("probability", data.Prediction.Probability).
		Msg("prediction completed")

	return data, nil
}

func (s *PredictionService) record(email string, data *ports.PredictionData) {
	if s.recorder == nil {
		return
	}
	s.recorder.Enqueue(domain.PredictionRecord{
		Email:       email,
		RiskLevel:   data.Prediction.RiskLevel,
		Probability: float64(data.Prediction.Probability),
		BMI:         data.HealthMetrics.BMI,
		CreatedAt:   time.Now().UTC(),
	})
}

func (s *PredictionService) assemble(account *domain.Account, in domain.PredictionInput, bmi float64, label int, probs [2]float64) *ports.PredictionData {
	riskLevel, status, color := domain.RiskLow, domain.StatusNegative, domain.ColorLow
	if label == 1 {
		riskLevel, status, color = domain.RiskHigh, domain.StatusPositive, domain.ColorHigh
	}

	probability := probs[1] * 100
	accuracy, modelType := s.predictor.Metrics()

	return &ports.PredictionData{
		User: ports.UserSummary{
			Name:  account.Name,
			Email: account.Email,
		},
		Prediction: ports.PredictionDetail{
			RiskLevel:       riskLevel,
			Status:          status,
			Probability:     int(math.Round(probability)),
			ProbabilityText: fmt.Sprintf("%.1f%%", probability),
			ColorIndicator:  color,
			Advice:          domain.AdviceFor(label),
		},
		HealthMetrics: ports.HealthMetrics{
			BMI:           math.Round(bmi*100) / 100,
			BMICategory:   domain.CategorizeBMI(bmi),
			Glucose:       in.Glucose,
			BloodPressure: in.BloodPressure,
			Age:           in.Age,
		},
		InputSummary: ports.InputSummary{
			Weight:           in.Weight,
			Height:           in.Height,
			Insulin:          in.Insulin,
			SkinThickness:    in.SkinThickness,
			DiabetesPedigree: in.Pedigree,
			Pregnancies:      in.Pregnancies,
		},
		ModelInfo: ports.ModelInfo{
			Accuracy:  accuracy,
			ModelType: modelType,
		},
		Disclaimer: domain.Disclaimer,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}
