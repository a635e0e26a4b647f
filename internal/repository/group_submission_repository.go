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

type GroupSubmissionRepository struct {
	Col *mongo.Collection
}

func NewGroupSubmissionRepository(db *mongo.Database) *GroupSubmissionRepository {
	return &GroupSubmissionRepository{Col: db.Collection("group_submissions")}
}

func (r *GroupSubmissionRepository) Create(ctx context.Context, submission *models.GroupSubmission) error {
	res, err := r.Col.InsertOne(ctx, submission)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		submission.ID = oid.Hex()
	}
	return nil
}

// Delete removes a submission row. Only used to back out of a lost lock
// race, before anything references the row.
func (r *GroupSubmissionRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

func (r *GroupSubmissionRepository) FindByID(ctx context.Context, id string) (*models.GroupSubmission, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var submission models.GroupSubmission
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&submission)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *GroupSubmissionRepository) FindAll(ctx context.Context) ([]models.GroupSubmission, error) {
	opts := options.Find().SetSort(bson.M{"uploaded_at": -1})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var submissions []models.GroupSubmission
	for cur.Next(ctx) {
		var s models.GroupSubmission
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, cur.Err()
}

// Grade sets the grading fields and returns the updated document.
// Re-grading is an idempotent overwrite.
func (r *GroupSubmissionRepository) Grade(ctx context.Context, id string, score int, feedback, gradedBy string) (*models.GroupSubmission, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrSubmissionNotFound
	}
	update := bson.M{"$set": bson.M{
		"score":     score,
		"feedback":  feedback,
		"graded_by": gradedBy,
		"graded_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.GroupSubmission
	err = r.Col.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
