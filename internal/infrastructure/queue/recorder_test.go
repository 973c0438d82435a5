package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/diasys/diasys-api/internal/core/domain"
	"github.com/diasys/diasys-api/pkg/logger"
)

type captureRepo struct {
	mu      sync.Mutex
	records []domain.PredictionRecord
}

func (r *captureRepo) Record(_ context.Context, rec domain.PredictionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *captureRepo) FindRecentByEmail(_ context.Context, email string, _ int) ([]domain.PredictionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PredictionRecord
	for _, rec := range r.records {
		if rec.Email == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *captureRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func TestRecorder_PersistsEnqueuedRecords(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(2, repo, logger.Init(logger.Options{Level: "error"}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	for i := 0; i < 5; i++ {
		rec.Enqueue(domain.PredictionRecord{
			Email:     "ana@x.com",
			RiskLevel: domain.RiskLow,
			CreatedAt: time.Now().UTC(),
		})
	}

	deadline := time.Now().Add(2 * time.Second)
	for repo.count() < 5 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 5 persisted records, got %d", repo.count())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRecorder_ShardIsStablePerEmail(t *testing.T) {
	rec := NewRecorder(4, &captureRepo{}, logger.Init(logger.Options{Level: "error"}))

	first := rec.shardIndex("ana@x.com")
	for i := 0; i < 10; i++ {
		if rec.shardIndex("ana@x.com") != first {
			t.Fatalf("shard index not stable")
		}
	}
}
