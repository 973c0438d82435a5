// Package model wraps the pre-trained diabetes classifier. The offline
// training job exports three JSON documents into the model directory:
// scaler.json (standardisation parameters), model.json (logistic regression
// weights) and model_metrics.json (evaluation summary). The adapter loads
// them once at startup and is read-only afterwards.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/diasys/diasys-api/internal/core/domain"
)

const (
	scalerFile  = "scaler.json"
	modelFile   = "model.json"
	metricsFile = "model_metrics.json"

	defaultModelType = "Machine Learning"
)

type scalerParams struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type modelParams struct {
	ModelType    string    `json:"model_type"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

type metricsDoc struct {
	Accuracy  float64 `json:"accuracy"`
	ModelType string  `json:"model_type"`
}

// Adapter exposes the classifier to the prediction pipeline. Construction
// never fails the process: when loading fails the adapter stays in an
// explicit unloaded state and every Predict call errors out fast.
type Adapter struct {
	scaler  *scalerParams
	model   *modelParams
	metrics *metricsDoc
}

// Load reads the exported model artifacts from dir. Load failures are logged
// and leave the adapter unloaded; a missing metrics document alone only
// degrades the reported metadata.
func Load(dir string, log zerolog.Logger) *Adapter {
	a := &Adapter{}

	var scaler scalerParams
	var model modelParams
	if err := readJSON(filepath.Join(dir, scalerFile), &scaler); err != nil {
		log.Warn().Err(err).Msg("could not load feature scaler; predictions disabled")
	} else if err := readJSON(filepath.Join(dir, modelFile), &model); err != nil {
		log.Warn().Err(err).Msg("could not load classifier; predictions disabled")
	} else if len(scaler.Mean) != domain.FeatureCount ||
		len(scaler.Scale) != domain.FeatureCount ||
		len(model.Coefficients) != domain.FeatureCount {
		log.Warn().
			Int("mean", len(scaler.Mean)).
			Int("scale", len(scaler.Scale)).
			Int("coefficients", len(model.Coefficients)).
			Msg("model artifacts have wrong dimensionality; predictions disabled")
	} else {
		a.scaler = &scaler
		a.model = &model
		log.Info().Str("model_type", model.ModelType).Msg("classifier loaded")
	}

	var metrics metricsDoc
	if err := readJSON(filepath.Join(dir, metricsFile), &metrics); err != nil {
		log.Warn().Err(err).Msg("could not load model metrics; using defaults")
	} else {
		a.metrics = &metrics
	}

	return a
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Loaded reports whether both classifier and scaler are available.
func (a *Adapter) Loaded() bool {
	return a.model != nil && a.scaler != nil
}

// Predict standardises the feature vector and scores it with the logistic
// regression. Returns the label (1 iff P(positive) >= 0.5) and the class
// probability distribution.
func (a *Adapter) Predict(features domain.FeatureVector) (int, [2]float64, error) {
	if !a.Loaded() {
		return 0, [2]float64{}, domain.ErrModelUnavailable
	}

	score := a.model.Intercept
	for i, x := range features {
		if a.scaler.Scale[i] == 0 {
			return 0, [2]float64{}, fmt.Errorf("scaler has zero scale at feature %d", i)
		}
		score += a.model.Coefficients[i] * (x - a.scaler.Mean[i]) / a.scaler.Scale[i]
	}

	pPositive := 1 / (1 + math.Exp(-score))
	label := 0
	if pPositive >= 0.5 {
		label = 1
	}
	return label, [2]float64{1 - pPositive, pPositive}, nil
}

// Metrics returns the offline evaluation summary, or zero-accuracy defaults
// when the metrics document failed to load.
func (a *Adapter) Metrics() (float64, string) {
	if a.metrics == nil {
		return 0, defaultModelType
	}
	return a.metrics.Accuracy, a.metrics.ModelType
}
