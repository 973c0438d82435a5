package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/diasys/diasys-api/internal/core/domain"
)

const predictionCollection = "predictions"

// MongoPredictionRepository stores per-account prediction history.
type MongoPredictionRepository struct {
	coll *mongo.Collection
}

func NewPredictionRepository(db *mongo.Database) *MongoPredictionRepository {
	return &MongoPredictionRepository{coll: db.Collection(predictionCollection)}
}

type mongoPrediction struct {
	Email       string  `bson:"email"`
	RiskLevel   string  `bson:"risk_level"`
	Probability float64 `bson:"probability"`
	BMI         float64 `bson:"bmi"`
	CreatedAt   int64   `bson:"created_at"`
}

func (r *MongoPredictionRepository) Record(ctx context.Context, rec domain.PredictionRecord) error {
	doc := mongoPrediction{
		Email:       rec.Email,
		RiskLevel:   rec.RiskLevel,
		Probability: rec.Probability,
		BMI:         rec.BMI,
		CreatedAt:   rec.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

func (r *MongoPredictionRepository) FindRecentByEmail(ctx context.Context, email string, limit int) ([]domain.PredictionRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("find predictions: %w", err)
	}
	defer cursor.Close(ctx)

	var records []domain.PredictionRecord
	for cursor.Next(ctx) {
		var mp mongoPrediction
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode prediction: %w", err)
		}
		records = append(records, domain.PredictionRecord{
			Email:       mp.Email,
			RiskLevel:   mp.RiskLevel,
			Probability: mp.Probability,
			BMI:         mp.BMI,
			CreatedAt:   unixToTime(mp.CreatedAt),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate predictions: %w", err)
	}
	return records, nil
}
