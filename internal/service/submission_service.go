package service

import (
	"context"
	"log"
	"math"
	"time"

	"quiz-integrity-service/internal/config"
	"quiz-integrity-service/internal/models"
)

type SubmissionStore interface {
	FindByUserAndTopic(ctx context.Context, userID, topicID string) (*models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) error
	FindByUser(ctx context.Context, userID string) ([]models.Submission, error)
}

// QuestionBank is the read-only source of questions and correct answers.
type QuestionBank interface {
	FindByTopic(ctx context.Context, topicID string) ([]models.Question, error)
}

// SubmissionService grades quizzes. The server is the sole source of truth
// for scores: it re-fetches the question bank and computes the result from
// the raw answers, ignoring anything the client may claim about its score.
type SubmissionService struct {
	Submissions SubmissionStore
	Questions   QuestionBank
	Sessions    SessionStore
	Quiz        config.QuizConfig
}

func NewSubmissionService(submissions SubmissionStore, questions QuestionBank, sessions SessionStore, quiz config.QuizConfig) *SubmissionService {
	return &SubmissionService{Submissions: submissions, Questions: questions, Sessions: sessions, Quiz: quiz}
}

// Submit validates and grades one quiz attempt.
//
// The pre-insert existence check gives a friendly error on the common
// path, but the guarantee against double submission is the storage layer's
// unique (user, topic) constraint: of two racing submits exactly one
// insert succeeds, the other surfaces as ErrAlreadyCompleted.
func (s *SubmissionService) Submit(ctx context.Context, userID, topicID, topicName string, answers map[string]int, timeSpentSeconds int, sessionToken string) (*models.Submission, error) {
	existing, err := s.Submissions.FindByUserAndTopic(ctx, userID, topicID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrAlreadyCompleted
	}

	questions, err := s.Questions.FindByTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, models.ErrQuestionsNotFound
	}

	// Every submitted option index must be inside the four-option range.
	// One bad value aborts the whole submission with no partial write.
	for _, answer := range answers {
		if answer < 0 || answer > models.MaxOptionIndex {
			return nil, models.ErrInvalidAnswer
		}
	}

	correct := 0
	for _, q := range questions {
		if answer, ok := answers[q.ID]; ok && answer == q.CorrectAnswer {
			correct++
		}
	}

	totalQuestions := len(questions)
	score := correct * s.Quiz.PointsPerQuestion
	percentage := int(math.Round(float64(correct) / float64(totalQuestions) * 100))

	submission := &models.Submission{
		UserID:           userID,
		TopicID:          topicID,
		TopicName:        topicName,
		Answers:          answers,
		Score:            score,
		TotalQuestions:   totalQuestions,
		Percentage:       percentage,
		TimeSpentSeconds: timeSpentSeconds,
	}

	// The session is advisory at submit time: its rollup is copied onto
	// the record and a submit after expiry is accepted but flagged, since
	// the countdown is an anti-cheat signal rather than a hard deadline.
	now := time.Now()
	var session *models.QuizSession
	if sessionToken != "" {
		session, err = s.Sessions.FindByToken(ctx, sessionToken, userID)
		if err != nil {
			return nil, err
		}
	}
	if session != nil {
		submission.TabSwitches = session.TabSwitches
		submission.Late = session.Expired(now)
	}

	if err := s.Submissions.Create(ctx, submission); err != nil {
		return nil, err
	}

	if session != nil && session.Status == models.SessionActive {
		if err := s.Sessions.SetStatus(ctx, session.ID, models.SessionCompleted); err != nil {
			log.Printf("Error completing session %s: %v", session.ID, err)
		}
	}

	log.Printf("Quiz submitted - User: %s, Topic: %s, Score: %d/%d (%d/%d correct)",
		userID, topicID, score, totalQuestions*s.Quiz.PointsPerQuestion, correct, totalQuestions)
	return submission, nil
}

// ListByUser returns the caller's graded submissions, newest first.
func (s *SubmissionService) ListByUser(ctx context.Context, userID string) ([]models.Submission, error) {
	return s.Submissions.FindByUser(ctx, userID)
}
