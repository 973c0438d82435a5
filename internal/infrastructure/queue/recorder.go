package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/diasys/diasys-api/internal/api/metrics"
	"github.com/diasys/diasys-api/internal/core/domain"
	"github.com/diasys/diasys-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Recorder persists prediction history off the request path. Records are
// sharded to a fixed set of workers by account email, guaranteeing
// per-account write ordering.
type Recorder struct {
	workers []chan domain.PredictionRecord
	repo    ports.PredictionRepository
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, repo ports.PredictionRepository, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.PredictionRecord, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.PredictionRecord, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a record to the worker responsible for its account. A full
// worker channel drops the record rather than blocking the request; history
// is best-effort.
func (r *Recorder) Enqueue(rec domain.PredictionRecord) {
	i := r.shardIndex(rec.Email)
	select {
	case r.workers[i] <- rec:
		metrics.RecorderQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(r.workers[i])))
	default:
		r.log.Warn().Str("email", rec.Email).Msg("history queue full, record dropped")
	}
}

// shardIndex maps an email deterministically to a worker index.
func (r *Recorder) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.PredictionRecord) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-ch:
			if !ok {
				return
			}
			metrics.RecorderQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := r.repo.Record(ctx, rec); err != nil {
				r.log.Error().Err(err).
					Str("email", rec.Email).
					Msg("failed to persist prediction record")
			}
		}
	}
}
