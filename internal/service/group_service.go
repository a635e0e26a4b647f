package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"quiz-integrity-service/internal/config"
	"quiz-integrity-service/internal/models"
	"quiz-integrity-service/internal/storage"

	"github.com/google/uuid"
)

type GroupStore interface {
	FindByStudent(ctx context.Context, userID string) (*models.Group, error)
	FindByID(ctx context.Context, id string) (*models.Group, error)
	AcquireLock(ctx context.Context, groupID, submissionID string) error
	SetScore(ctx context.Context, groupID string, score int) error
}

type GroupSubmissionStore interface {
	Create(ctx context.Context, submission *models.GroupSubmission) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.GroupSubmission, error)
	FindAll(ctx context.Context) ([]models.GroupSubmission, error)
	Grade(ctx context.Context, id string, score int, feedback, gradedBy string) (*models.GroupSubmission, error)
}

// GroupService gates the single assignment upload per group behind the
// group lock.
type GroupService struct {
	Groups      GroupStore
	Submissions GroupSubmissionStore
	Blobs       storage.BlobStore
	Quiz        config.QuizConfig
}

func NewGroupService(groups GroupStore, submissions GroupSubmissionStore, blobs storage.BlobStore, quiz config.QuizConfig) *GroupService {
	return &GroupService{Groups: groups, Submissions: submissions, Blobs: blobs, Quiz: quiz}
}

// GroupStatus is the student-facing view of their group's submission
// state.
type GroupStatus struct {
	GroupNumber  int                     `json:"group_number"`
	Locked       bool                    `json:"locked"`
	HasSubmitted bool                    `json:"has_submitted"`
	Score        *int                    `json:"score,omitempty"`
	Submission   *models.GroupSubmission `json:"submission,omitempty"`
}

// SubmitAssignment uploads the group's single assignment file.
//
// The file is stored first and the lock transition happens last, as one
// conditional update. A crash between the two leaves an unreferenced blob
// (recoverable by garbage collection), never a locked group without a
// retrievable file. When two members race, both may upload, but exactly
// one wins the lock; the loser's submission row is removed and the call
// fails with ErrGroupAlreadySubmitted.
func (s *GroupService) SubmitAssignment(ctx context.Context, userID, role, fileName, contentType string, size int64, data []byte) (*models.GroupSubmission, error) {
	if role != "student" {
		return nil, models.ErrForbidden
	}

	group, err := s.Groups.FindByStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, models.ErrNoGroupAssigned
	}
	if group.Locked {
		return nil, models.ErrGroupAlreadySubmitted
	}

	if contentType != s.Quiz.UploadContentType {
		return nil, models.ErrInvalidFile
	}
	if size > s.Quiz.MaxUploadBytes {
		return nil, models.ErrFileTooLarge
	}

	objectName := fmt.Sprintf("submissions/group-%d-%s.pdf", group.GroupNumber, uuid.NewString())
	fileURL, err := s.Blobs.Upload(ctx, objectName, data, contentType)
	if err != nil {
		log.Printf("Error uploading group %d assignment: %v", group.GroupNumber, err)
		return nil, models.ErrStorageFailure
	}

	submission := &models.GroupSubmission{
		GroupID:     group.ID,
		GroupNumber: group.GroupNumber,
		FileURL:     fileURL,
		FileName:    fileName,
		UploadedBy:  userID,
		UploadedAt:  time.Now(),
	}
	if err := s.Submissions.Create(ctx, submission); err != nil {
		return nil, err
	}

	if err := s.Groups.AcquireLock(ctx, group.ID, submission.ID); err != nil {
		// Lost the race: another member's upload locked the group between
		// our gate check and the conditional update. Back out our row so
		// exactly one submission exists; the blob is left for GC.
		if delErr := s.Submissions.Delete(ctx, submission.ID); delErr != nil {
			log.Printf("Error removing losing submission %s: %v", submission.ID, delErr)
		}
		return nil, err
	}

	log.Printf("Group assignment submitted - Group: %d, By: %s", group.GroupNumber, userID)
	return submission, nil
}

// Status reports the caller's group submission state.
func (s *GroupService) Status(ctx context.Context, userID, role string) (*GroupStatus, error) {
	if role != "student" {
		return nil, models.ErrForbidden
	}
	group, err := s.Groups.FindByStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, models.ErrNoGroupAssigned
	}

	status := &GroupStatus{
		GroupNumber:  group.GroupNumber,
		Locked:       group.Locked,
		HasSubmitted: group.SubmissionID != "",
		Score:        group.Score,
	}
	if group.SubmissionID != "" {
		submission, err := s.Submissions.FindByID(ctx, group.SubmissionID)
		if err != nil {
			return nil, err
		}
		status.Submission = submission
	}
	return status, nil
}
