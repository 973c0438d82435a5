package ports

import "github.com/diasys/diasys-api/internal/core/domain"

// Predictor wraps the opaque classifier and its feature scaler.
// Implementations are read-only after load and safe for concurrent use.
type Predictor interface {
	// Loaded reports whether both classifier and scaler are available.
	Loaded() bool
	// Predict returns the raw label (1 positive, 0 negative) and the class
	// probability distribution [P(negative), P(positive)].
	Predict(features domain.FeatureVector) (int, [2]float64, error)
	// Metrics returns the offline evaluation summary, degraded to
	// (0, "Machine Learning") when the metrics document is unavailable.
	Metrics() (accuracy float64, modelType string)
}
