package redis

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diasys/diasys-api/internal/core/domain"
	"github.com/diasys/diasys-api/internal/core/ports"
)

const cacheTTL = time.Hour

// PredictionCache stores assembled prediction payloads keyed by account and
// input. The classifier is deterministic, so a replay of the same input can
// be served verbatim.
// Key format: prediction:<sha256(email|canonical input)>
type PredictionCache struct {
	client *redis.Client
}

// NewPredictionCache creates a PredictionCache wrapping the given Redis client.
func NewPredictionCache(client *redis.Client) *PredictionCache {
	return &PredictionCache{client: client}
}

// Get returns the cached payload for this account+input, if present.
func (p *PredictionCache) Get(ctx context.Context, email string, in domain.PredictionInput) (*ports.PredictionData, bool, error) {
	raw, err := p.client.Get(ctx, p.key(email, in)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var data ports.PredictionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return &data, true, nil
}

// Set records the payload for this account+input (expires after cacheTTL).
func (p *PredictionCache) Set(ctx context.Context, email string, in domain.PredictionInput, data *ports.PredictionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return p.client.Set(ctx, p.key(email, in), raw, cacheTTL).Err()
}

func (p *PredictionCache) key(email string, in domain.PredictionInput) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%g|%g|%g|%g|%g|%g|%g|%d",
		email, in.Pregnancies, in.Glucose, in.BloodPressure, in.SkinThickness,
		in.Insulin, in.Weight, in.Height, in.Pedigree, in.Age))
	return fmt.Sprintf("prediction:%x", sum)
}
