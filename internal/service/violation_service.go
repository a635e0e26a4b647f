package service

import (
	"context"
	"log"
	"time"

	"quiz-integrity-service/internal/models"
	"quiz-integrity-service/internal/repository"
	"quiz-integrity-service/internal/severity"
)

type ViolationStore interface {
	Create(ctx context.Context, violation *models.QuizViolation) error
	Find(ctx context.Context, filter repository.ViolationFilter) ([]models.QuizViolation, error)
}

// ViolationService is a logging sink, not a gate: it records integrity
// signals against an active session but never blocks the quiz itself.
type ViolationService struct {
	Violations ViolationStore
	Sessions   SessionStore
}

func NewViolationService(violations ViolationStore, sessions SessionStore) *ViolationService {
	return &ViolationService{Violations: violations, Sessions: sessions}
}

// Report classifies and appends one violation record. The session must
// belong to the reporting user and still be active; reports against an
// expired session are dropped since the quiz is effectively over.
func (s *ViolationService) Report(ctx context.Context, userID, sessionToken, violationType string, count, timeIntoQuiz int, ip, userAgent string) (*models.QuizViolation, error) {
	if !models.KnownViolationType(violationType) {
		return nil, models.ErrInvalidViolationType
	}
	if count < 1 {
		count = 1
	}

	session, err := s.Sessions.FindByToken(ctx, sessionToken, userID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Status != models.SessionActive {
		return nil, models.ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		return nil, models.ErrSessionExpired
	}

	violation := &models.QuizViolation{
		UserID:        userID,
		SessionID:     session.ID,
		TopicID:       session.TopicID,
		ViolationType: violationType,
		Severity:      severity.Classify(violationType, count),
		Count:         count,
		Details: models.ViolationDetails{
			IP:                  ip,
			UserAgent:           userAgent,
			TimeIntoQuizSeconds: timeIntoQuiz,
		},
	}
	if err := s.Violations.Create(ctx, violation); err != nil {
		return nil, err
	}

	if violationType == models.ViolationTabSwitch {
		if err := s.Sessions.IncrementTabSwitches(ctx, session.ID, count); err != nil {
			return nil, err
		}
	}

	log.Printf("Violation logged - User: %s, Type: %s, Severity: %s, Count: %d",
		userID, violationType, violation.Severity, count)
	return violation, nil
}

// List returns violations for the admin review view, newest first.
func (s *ViolationService) List(ctx context.Context, filter repository.ViolationFilter) ([]models.QuizViolation, error) {
	return s.Violations.Find(ctx, filter)
}
