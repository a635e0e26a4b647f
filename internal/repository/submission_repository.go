package repository

import (
	"context"
	"errors"
	"time"

	"quiz-integrity-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionRepository struct {
	Col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{Col: db.Collection("submissions")}
}

// FindByUserAndTopic returns the submission for (user, topic), or nil when
// the quiz has not been completed yet.
func (r *SubmissionRepository) FindByUserAndTopic(ctx context.Context, userID, topicID string) (*models.Submission, error) {
	var submission models.Submission
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID, "topic_id": topicID}).Decode(&submission)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// Create inserts a graded submission. The collection carries a unique
// index on {user_id, topic_id}, so a concurrent duplicate insert fails at
// the storage layer and is reported as ErrAlreadyCompleted.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	submission.CreatedAt = time.Now()
	res, err := r.Col.InsertOne(ctx, submission)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrAlreadyCompleted
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		submission.ID = oid.Hex()
	}
	return nil
}

func (r *SubmissionRepository) FindByUser(ctx context.Context, userID string) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var submissions []models.Submission
	for cur.Next(ctx) {
		var s models.Submission
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, cur.Err()
}
