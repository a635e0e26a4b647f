package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-integrity-service/internal/models"
)

func seedGradedSetup(t *testing.T) (*fakeGroupStore, *fakeGroupSubmissionStore, string) {
	t.Helper()
	groups := newFakeGroupStore(testGroup())
	subs := newFakeGroupSubmissionStore()
	submission := &models.GroupSubmission{
		GroupID:     "group-1",
		GroupNumber: 1,
		FileURL:     "http://blobs.local/submissions/group-1.pdf",
		FileName:    "report.pdf",
		UploadedBy:  "student-1",
		UploadedAt:  time.Now(),
	}
	if err := subs.Create(context.Background(), submission); err != nil {
		t.Fatalf("seed submission: %v", err)
	}
	if err := groups.AcquireLock(context.Background(), "group-1", submission.ID); err != nil {
		t.Fatalf("seed lock: %v", err)
	}
	return groups, subs, submission.ID
}

func TestGradePropagatesToGroup(t *testing.T) {
	groups, subs, submissionID := seedGradedSetup(t)
	svc := NewGradingService(subs, groups)

	graded, err := svc.Grade(context.Background(), "admin-1", submissionID, 85, "Solid analysis")
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if graded.Score == nil || *graded.Score != 85 {
		t.Errorf("expected submission score 85, got %v", graded.Score)
	}
	if graded.Feedback != "Solid analysis" {
		t.Errorf("expected feedback recorded, got %q", graded.Feedback)
	}
	if graded.GradedBy != "admin-1" {
		t.Errorf("expected grader recorded, got %q", graded.GradedBy)
	}

	group, _ := groups.FindByID(context.Background(), "group-1")
	if group.Score == nil || *group.Score != 85 {
		t.Errorf("score must propagate onto the group, got %v", group.Score)
	}
}

func TestGradeRejectsOutOfRangeScore(t *testing.T) {
	groups, subs, submissionID := seedGradedSetup(t)
	svc := NewGradingService(subs, groups)

	for _, bad := range []int{-1, 101, 500} {
		_, err := svc.Grade(context.Background(), "admin-1", submissionID, bad, "")
		if !errors.Is(err, models.ErrInvalidScore) {
			t.Errorf("score %d: expected ErrInvalidScore, got %v", bad, err)
		}
	}
	submission, _ := subs.FindByID(context.Background(), submissionID)
	if submission.Score != nil {
		t.Errorf("rejected grades must not be stored, got %v", submission.Score)
	}
}

func TestGradeUnknownSubmission(t *testing.T) {
	groups, subs, _ := seedGradedSetup(t)
	svc := NewGradingService(subs, groups)

	_, err := svc.Grade(context.Background(), "admin-1", "no-such-id", 50, "")
	if !errors.Is(err, models.ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestRegradeOverwrites(t *testing.T) {
	groups, subs, submissionID := seedGradedSetup(t)
	svc := NewGradingService(subs, groups)

	if _, err := svc.Grade(context.Background(), "admin-1", submissionID, 70, "First pass"); err != nil {
		t.Fatalf("first grade failed: %v", err)
	}
	graded, err := svc.Grade(context.Background(), "admin-2", submissionID, 90, "Revised after appeal")
	if err != nil {
		t.Fatalf("re-grade failed: %v", err)
	}
	if *graded.Score != 90 || graded.GradedBy != "admin-2" {
		t.Errorf("re-grade must overwrite, got score %v by %q", graded.Score, graded.GradedBy)
	}
	group, _ := groups.FindByID(context.Background(), "group-1")
	if group.Score == nil || *group.Score != 90 {
		t.Errorf("group score must follow the latest grade, got %v", group.Score)
	}
}

func TestGradingGet(t *testing.T) {
	groups, subs, submissionID := seedGradedSetup(t)
	svc := NewGradingService(subs, groups)

	submission, err := svc.Get(context.Background(), submissionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if submission.ID != submissionID {
		t.Errorf("expected %q, got %q", submissionID, submission.ID)
	}

	_, err = svc.Get(context.Background(), "missing")
	if !errors.Is(err, models.ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}
