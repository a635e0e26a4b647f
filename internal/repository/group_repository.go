package repository

import (
	"context"
	"errors"
	"time"

	"quiz-integrity-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type GroupRepository struct {
	Col *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *GroupRepository {
	return &GroupRepository{Col: db.Collection("groups")}
}

// FindByStudent resolves the group a student belongs to via roster
// membership, or nil when the student is unassigned.
func (r *GroupRepository) FindByStudent(ctx context.Context, userID string) (*models.Group, error) {
	var group models.Group
	err := r.Col.FindOne(ctx, bson.M{"students": userID}).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*models.Group, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var group models.Group
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// AcquireLock performs the locked false->true transition as one
// conditional update. When the group is already locked the update matches
// nothing and the caller has lost the race; that is reported as
// ErrGroupAlreadySubmitted, not as a raw storage error.
func (r *GroupRepository) AcquireLock(ctx context.Context, groupID, submissionID string) error {
	objID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return err
	}
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": objID, "locked": false},
		bson.M{"$set": bson.M{
			"locked":        true,
			"submission_id": submissionID,
			"updated_at":    time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return models.ErrGroupAlreadySubmitted
	}
	return nil
}

// SetScore propagates a grade onto the group. All members share the one
// score; re-grading overwrites it.
func (r *GroupRepository) SetScore(ctx context.Context, groupID string, score int) error {
	objID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{"score": score, "updated_at": time.Now()},
	})
	return err
}
