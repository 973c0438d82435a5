package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diasys/diasys-api/internal/core/domain"
	"github.com/diasys/diasys-api/pkg/logger"
)

func writeModelDir(t *testing.T, scaler, model, metrics string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		scalerFile:  scaler,
		modelFile:   model,
		metricsFile: metrics,
	}
	for name, content := range files {
		if content == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

const (
	// Identity scaler: mean 0, scale 1 for all eight features.
	identityScaler = `{"mean":[0,0,0,0,0,0,0,0],"scale":[1,1,1,1,1,1,1,1]}`
	// Model that scores only the first feature.
	firstFeatureModel = `{"model_type":"Logistic Regression","coefficients":[1,0,0,0,0,0,0,0],"intercept":0}`
	testMetrics       = `{"accuracy":0.85,"model_type":"Logistic Regression"}`
)

func TestAdapter_LoadAndPredict(t *testing.T) {
	dir := writeModelDir(t, identityScaler, firstFeatureModel, testMetrics)
	a := Load(dir, logger.Init(logger.Options{Level: "error"}))

	if !a.Loaded() {
		t.Fatalf("expected adapter to be loaded")
	}

	// First feature strongly positive: sigmoid(10) ≈ 1 → label 1.
	label, probs, err := a.Predict(domain.FeatureVector{10, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if label != 1 {
		t.Fatalf("expected label 1, got %d", label)
	}
	if probs[1] < 0.99 {
		t.Fatalf("expected P(positive) near 1, got %v", probs[1])
	}

	// First feature strongly negative → label 0.
	label, probs, err = a.Predict(domain.FeatureVector{-10, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if label != 0 {
		t.Fatalf("expected label 0, got %d", label)
	}
	if probs[0] < 0.99 {
		t.Fatalf("expected P(negative) near 1, got %v", probs[0])
	}

	accuracy, modelType := a.Metrics()
	if accuracy != 0.85 || modelType != "Logistic Regression" {
		t.Fatalf("unexpected metrics: %v %s", accuracy, modelType)
	}
}

func TestAdapter_ZeroScoreIsPositive(t *testing.T) {
	dir := writeModelDir(t, identityScaler, firstFeatureModel, "")
	a := Load(dir, logger.Init(logger.Options{Level: "error"}))

	// sigmoid(0) = 0.5, and 0.5 maps to the positive label.
	label, probs, err := a.Predict(domain.FeatureVector{})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if label != 1 {
		t.Fatalf("expected label 1 at the 0.5 boundary, got %d", label)
	}
	if probs[1] != 0.5 {
		t.Fatalf("expected P(positive)=0.5, got %v", probs[1])
	}
}

func TestAdapter_MissingArtifactsUnloaded(t *testing.T) {
	a := Load(t.TempDir(), logger.Init(logger.Options{Level: "error"}))

	if a.Loaded() {
		t.Fatalf("expected adapter to be unloaded")
	}
	if _, _, err := a.Predict(domain.FeatureVector{}); err == nil {
		t.Fatalf("expected error from unloaded predict")
	}

	accuracy, modelType := a.Metrics()
	if accuracy != 0 || modelType != defaultModelType {
		t.Fatalf("expected degraded metrics, got %v %s", accuracy, modelType)
	}
}

func TestAdapter_WrongDimensionalityUnloaded(t *testing.T) {
	dir := writeModelDir(t,
		`{"mean":[0,0],"scale":[1,1]}`,
		firstFeatureModel,
		testMetrics,
	)
	a := Load(dir, logger.Init(logger.Options{Level: "error"}))

	if a.Loaded() {
		t.Fatalf("expected adapter to reject wrong dimensionality")
	}
	// Metrics still load independently of the model artifacts.
	if accuracy, _ := a.Metrics(); accuracy != 0.85 {
		t.Fatalf("expected metrics to load, got accuracy %v", accuracy)
	}
}
