package service

import (
	"context"
	"log"
	"time"

	"quiz-integrity-service/internal/config"
	"quiz-integrity-service/internal/models"

	"github.com/google/uuid"
)

// SessionStore is the persistence surface the session logic needs.
// Find methods return (nil, nil) when nothing matches.
type SessionStore interface {
	FindActive(ctx context.Context, userID, topicID string) (*models.QuizSession, error)
	FindByToken(ctx context.Context, token, userID string) (*models.QuizSession, error)
	Create(ctx context.Context, session *models.QuizSession) error
	SetStatus(ctx context.Context, id, status string) error
	IncrementTabSwitches(ctx context.Context, id string, n int) error
}

// SubmissionReader is the part of the submission ledger the session store
// consults: whether a completed submission already exists.
type SubmissionReader interface {
	FindByUserAndTopic(ctx context.Context, userID, topicID string) (*models.Submission, error)
}

type SessionService struct {
	Sessions    SessionStore
	Submissions SubmissionReader
	Quiz        config.QuizConfig
}

func NewSessionService(sessions SessionStore, submissions SubmissionReader, quiz config.QuizConfig) *SessionService {
	return &SessionService{Sessions: sessions, Submissions: submissions, Quiz: quiz}
}

// StartSession issues a time-boxed session token for (user, topic), or
// restores the existing one. Restoring must not grant a fresh timer: a
// page reload gets the original token and expiry back. A completed quiz
// never gets a session; retakes are categorically disallowed.
//
// The returned bool is true when an existing session was restored.
func (s *SessionService) StartSession(ctx context.Context, userID, topicID, ip, userAgent string) (*models.QuizSession, bool, error) {
	if !s.Quiz.KnownTopic(topicID) {
		return nil, false, models.ErrUnknownTopic
	}

	existing, err := s.Submissions.FindByUserAndTopic(ctx, userID, topicID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return nil, false, models.ErrAlreadyCompleted
	}

	now := time.Now()
	active, err := s.Sessions.FindActive(ctx, userID, topicID)
	if err != nil {
		return nil, false, err
	}
	if active != nil && !active.Expired(now) {
		return active, true, nil
	}
	if active != nil {
		// Past its window; retire it so a fresh token can be issued.
		if err := s.Sessions.SetStatus(ctx, active.ID, models.SessionExpired); err != nil {
			return nil, false, err
		}
	}

	session := &models.QuizSession{
		UserID:       userID,
		TopicID:      topicID,
		SessionToken: uuid.NewString(),
		StartedAt:    now,
		ExpiresAt:    now.Add(s.Quiz.SessionDuration),
		Status:       models.SessionActive,
		IP:           ip,
		UserAgent:    userAgent,
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, false, err
	}

	log.Printf("Quiz session started - User: %s, Topic: %s", userID, topicID)
	return session, false, nil
}

// CheckCompletion reports whether the user has a graded submission for
// the topic, with a summary when one exists.
func (s *SessionService) CheckCompletion(ctx context.Context, userID, topicID string) (*models.Submission, error) {
	return s.Submissions.FindByUserAndTopic(ctx, userID, topicID)
}
