package service

import (
	"context"
	"log"

	"quiz-integrity-service/internal/models"
)

// GradingService is the admin-side mutation of group submissions. Only
// the upload is locked, not the grade: re-grading overwrites.
type GradingService struct {
	Submissions GroupSubmissionStore
	Groups      GroupStore
}

func NewGradingService(submissions GroupSubmissionStore, groups GroupStore) *GradingService {
	return &GradingService{Submissions: submissions, Groups: groups}
}

// Grade assigns score and feedback to a group submission and propagates
// the score onto the owning group, where every member shares it.
func (s *GradingService) Grade(ctx context.Context, callerID, submissionID string, score int, feedback string) (*models.GroupSubmission, error) {
	if score < 0 || score > 100 {
		return nil, models.ErrInvalidScore
	}

	submission, err := s.Submissions.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, models.ErrSubmissionNotFound
	}

	updated, err := s.Submissions.Grade(ctx, submissionID, score, feedback, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.Groups.SetScore(ctx, submission.GroupID, score); err != nil {
		return nil, err
	}

	log.Printf("Group submission graded - Submission: %s, Score: %d, By: %s", submissionID, score, callerID)
	return updated, nil
}

// Get returns one group submission for the admin detail view.
func (s *GradingService) Get(ctx context.Context, id string) (*models.GroupSubmission, error) {
	submission, err := s.Submissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, models.ErrSubmissionNotFound
	}
	return submission, nil
}

// List returns all group submissions, newest first.
func (s *GradingService) List(ctx context.Context) ([]models.GroupSubmission, error) {
	return s.Submissions.FindAll(ctx)
}
