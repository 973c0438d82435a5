package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/diasys/diasys-api/internal/api/metrics"
	"github.com/diasys/diasys-api/internal/core/domain"
	"github.com/diasys/diasys-api/internal/core/ports"
)

const historyLimit = 20

type PredictionHandler struct {
	predictions ports.PredictionService
	history     ports.PredictionRepository
}

func NewPredictionHandler(predictions ports.PredictionService, history ports.PredictionRepository) *PredictionHandler {
	return &PredictionHandler{predictions: predictions, history: history}
}

// Predict runs the diabetes risk pipeline for the authenticated account.
//
// @Summary      Predict diabetes risk
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      predictRequest  true  "Health measurements"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      500   {object}  errorEnvelope
// @Failure      503   {object}  errorEnvelope
// @Router       /predict [post]
func (h *PredictionHandler) Predict(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Format data tidak valid")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	timer := prometheus.NewTimer(metrics.PredictionDuration)
	defer timer.ObserveDuration()

	in := domain.PredictionInput{
		Pregnancies:   req.Pregnancies,
		Glucose:       req.Glucose,
		BloodPressure: req.BloodPressure,
		SkinThickness: req.SkinThickness,
		Insulin:       req.Insulin,
		Weight:        req.Weight,
		Height:        req.Height,
		Pedigree:      req.DiabetesPedigreeFunction,
		Age:           req.Age,
	}

	data, err := h.predictions.Predict(c.Request().Context(), account, in)
	if err != nil {
		var bmiErr *domain.BMIOutOfRangeError
		switch {
		case errors.Is(err, domain.ErrModelUnavailable):
			metrics.PredictionErrorsTotal.WithLabelValues("model_unavailable").Inc()
		case errors.As(err, &bmiErr):
			metrics.PredictionErrorsTotal.WithLabelValues("invalid_bmi").Inc()
		case errors.Is(err, domain.ErrInference):
			metrics.PredictionErrorsTotal.WithLabelValues("inference_error").Inc()
		}
		return err
	}

	metrics.PredictionsTotal.WithLabelValues(data.Prediction.RiskLevel).Inc()
	return c.JSON(http.StatusOK, apiResponse{
		Status:  "success",
		Message: "Prediksi berhasil dilakukan",
		Data:    data,
	})
}

// History returns the account's most recent predictions, newest first.
//
// @Summary      Prediction history
// @Tags         prediction
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  errorEnvelope
// @Router       /history [get]
func (h *PredictionHandler) History(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	records, err := h.history.FindRecentByEmail(c.Request().Context(), account.Email, historyLimit)
	if err != nil {
		return err
	}

	entries := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, historyEntry{
			RiskLevel:   rec.RiskLevel,
			Probability: rec.Probability,
			BMI:         rec.BMI,
			CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, apiResponse{
		Status: "success",
		Data:   historyData{Predictions: entries},
	})
}
