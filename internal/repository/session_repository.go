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

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("sessions")}
}

// FindActive returns the active session for (user, topic), or nil when
// there is none.
func (r *SessionRepository) FindActive(ctx context.Context, userID, topicID string) (*models.QuizSession, error) {
	var session models.QuizSession
	err := r.Col.FindOne(ctx, bson.M{
		"user_id":  userID,
		"topic_id": topicID,
		"status":   models.SessionActive,
	}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByToken looks a session up by its token, scoped to the user it was
// issued to. Tokens are not transferable, so a token presented by a
// different user resolves to nothing.
func (r *SessionRepository) FindByToken(ctx context.Context, token, userID string) (*models.QuizSession, error) {
	var session models.QuizSession
	err := r.Col.FindOne(ctx, bson.M{
		"session_token": token,
		"user_id":       userID,
	}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Create(ctx context.Context, session *models.QuizSession) error {
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	res, err := r.Col.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid.Hex()
	}
	return nil
}

func (r *SessionRepository) SetStatus(ctx context.Context, id, status string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	return err
}

// IncrementTabSwitches bumps the denormalized rollup on the session.
func (r *SessionRepository) IncrementTabSwitches(ctx context.Context, id string, n int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$inc": bson.M{"tab_switches": n},
		"$set": bson.M{"updated_at": time.Now()},
	})
	return err
}
