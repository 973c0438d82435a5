// Package metrics defines and registers all custom Prometheus metrics for
// the DiaSys API. It is the single source of truth for metric names, labels,
// and help strings. All metrics register with the default registry at init
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "diasys"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts account registrations.
// Label:
//   - result: "created" or "duplicate"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh attempts.
// Label:
//   - result: "success" or "invalid_token"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of access token refresh attempts, by result.",
	},
	[]string{"result"},
)

// ── Prediction metrics ────────────────────────────────────────────────────────

// PredictionsTotal counts completed predictions.
// Label:
//   - risk_level: "TINGGI" or "RENDAH"
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of completed predictions, by risk level.",
	},
	[]string{"risk_level"},
)

// PredictionErrorsTotal counts failed prediction requests.
// Label:
//   - reason: "model_unavailable", "invalid_bmi", or "inference_error"
var PredictionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_errors_total",
		Help:      "Total number of prediction requests that failed, by reason.",
	},
	[]string{"reason"},
)

// PredictionDuration measures how long one prediction takes end-to-end,
// cache lookup and inference included.
var PredictionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "Duration of prediction handling from validation to response assembly.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// RecorderQueueDepth tracks the number of history records waiting in each
// recorder worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RecorderQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "recorder_queue_depth",
		Help:      "Current number of prediction records pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)
