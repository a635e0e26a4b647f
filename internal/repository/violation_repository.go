package repository

import (
	"context"
	"time"

	"quiz-integrity-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ViolationRepository is an append-only log. Records are never updated or
// merged after the fact.
type ViolationRepository struct {
	Col *mongo.Collection
}

func NewViolationRepository(db *mongo.Database) *ViolationRepository {
	return &ViolationRepository{Col: db.Collection("violations")}
}

func (r *ViolationRepository) Create(ctx context.Context, violation *models.QuizViolation) error {
	violation.CreatedAt = time.Now()
	res, err := r.Col.InsertOne(ctx, violation)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		violation.ID = oid.Hex()
	}
	return nil
}

// ViolationFilter narrows an admin listing. Zero values mean no filter.
type ViolationFilter struct {
	UserID   string
	Severity string
	Limit    int64
}

func (r *ViolationRepository) Find(ctx context.Context, filter ViolationFilter) ([]models.QuizViolation, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Severity != "" {
		query["severity"] = filter.Severity
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cur, err := r.Col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var violations []models.QuizViolation
	for cur.Next(ctx) {
		var v models.QuizViolation
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		violations = append(violations, v)
	}
	return violations, cur.Err()
}
