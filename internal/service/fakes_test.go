package service

import (
	"context"
	"fmt"
	"sync"

	"quiz-integrity-service/internal/models"
	"quiz-integrity-service/internal/repository"
)

// In-memory stores mirroring the Mongo repositories' behavior, including
// the storage-level guarantees the invariants lean on: the unique
// (user, topic) submission constraint and the conditional group lock.

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.QuizSession
	nextID   int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*models.QuizSession{}}
}

func (f *fakeSessionStore) FindActive(ctx context.Context, userID, topicID string) (*models.QuizSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.UserID == userID && s.TopicID == topicID && s.Status == models.SessionActive {
			copy := *s
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionStore) FindByToken(ctx context.Context, token, userID string) (*models.QuizSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.SessionToken == token && s.UserID == userID {
			copy := *s
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionStore) Create(ctx context.Context, session *models.QuizSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	session.ID = fmt.Sprintf("session-%d", f.nextID)
	copy := *session
	f.sessions[session.ID] = &copy
	return nil
}

func (f *fakeSessionStore) SetStatus(ctx context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		s.Status = status
	}
	return nil
}

func (f *fakeSessionStore) IncrementTabSwitches(ctx context.Context, id string, n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		s.TabSwitches += n
	}
	return nil
}

func (f *fakeSessionStore) get(id string) *models.QuizSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		copy := *s
		return &copy
	}
	return nil
}

type fakeSubmissionStore struct {
	mu          sync.Mutex
	submissions map[string]*models.Submission // keyed by userID|topicID
	nextID      int
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{submissions: map[string]*models.Submission{}}
}

func submissionKey(userID, topicID string) string {
	return userID + "|" + topicID
}

func (f *fakeSubmissionStore) FindByUserAndTopic(ctx context.Context, userID, topicID string) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.submissions[submissionKey(userID, topicID)]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, nil
}

// Create enforces the unique (user, topic) index the real collection has.
func (f *fakeSubmissionStore) Create(ctx context.Context, submission *models.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := submissionKey(submission.UserID, submission.TopicID)
	if _, exists := f.submissions[key]; exists {
		return models.ErrAlreadyCompleted
	}
	f.nextID++
	submission.ID = fmt.Sprintf("submission-%d", f.nextID)
	copy := *submission
	f.submissions[key] = &copy
	return nil
}

func (f *fakeSubmissionStore) FindByUser(ctx context.Context, userID string) ([]models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Submission
	for _, s := range f.submissions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submissions)
}

type fakeQuestionBank struct {
	questions map[string][]models.Question
}

func (f *fakeQuestionBank) FindByTopic(ctx context.Context, topicID string) ([]models.Question, error) {
	return f.questions[topicID], nil
}

type fakeViolationStore struct {
	mu         sync.Mutex
	violations []models.QuizViolation
}

func (f *fakeViolationStore) Create(ctx context.Context, violation *models.QuizViolation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	violation.ID = fmt.Sprintf("violation-%d", len(f.violations)+1)
	f.violations = append(f.violations, *violation)
	return nil
}

func (f *fakeViolationStore) Find(ctx context.Context, filter repository.ViolationFilter) ([]models.QuizViolation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.QuizViolation
	for _, v := range f.violations {
		if filter.UserID != "" && v.UserID != filter.UserID {
			continue
		}
		if filter.Severity != "" && v.Severity != filter.Severity {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

type fakeGroupStore struct {
	mu     sync.Mutex
	groups map[string]*models.Group
}

func newFakeGroupStore(groups ...*models.Group) *fakeGroupStore {
	f := &fakeGroupStore{groups: map[string]*models.Group{}}
	for _, g := range groups {
		copy := *g
		f.groups[g.ID] = &copy
	}
	return f
}

func (f *fakeGroupStore) FindByStudent(ctx context.Context, userID string) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.groups {
		for _, student := range g.Students {
			if student == userID {
				copy := *g
				return &copy, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeGroupStore) FindByID(ctx context.Context, id string) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.groups[id]; ok {
		copy := *g
		return &copy, nil
	}
	return nil, nil
}

// AcquireLock mirrors the conditional update: the transition only happens
// when the lock is still unset.
func (f *fakeGroupStore) AcquireLock(ctx context.Context, groupID, submissionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[groupID]
	if !ok || g.Locked {
		return models.ErrGroupAlreadySubmitted
	}
	g.Locked = true
	g.SubmissionID = submissionID
	return nil
}

func (f *fakeGroupStore) SetScore(ctx context.Context, groupID string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.groups[groupID]; ok {
		g.Score = &score
	}
	return nil
}

type fakeGroupSubmissionStore struct {
	mu          sync.Mutex
	submissions map[string]*models.GroupSubmission
	nextID      int
}

func newFakeGroupSubmissionStore() *fakeGroupSubmissionStore {
	return &fakeGroupSubmissionStore{submissions: map[string]*models.GroupSubmission{}}
}

func (f *fakeGroupSubmissionStore) Create(ctx context.Context, submission *models.GroupSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	submission.ID = fmt.Sprintf("group-submission-%d", f.nextID)
	copy := *submission
	f.submissions[submission.ID] = &copy
	return nil
}

func (f *fakeGroupSubmissionStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.submissions, id)
	return nil
}

func (f *fakeGroupSubmissionStore) FindByID(ctx context.Context, id string) (*models.GroupSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.submissions[id]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, nil
}

func (f *fakeGroupSubmissionStore) FindAll(ctx context.Context) ([]models.GroupSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.GroupSubmission
	for _, s := range f.submissions {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeGroupSubmissionStore) Grade(ctx context.Context, id string, score int, feedback, gradedBy string) (*models.GroupSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.submissions[id]
	if !ok {
		return nil, models.ErrSubmissionNotFound
	}
	s.Score = &score
	s.Feedback = feedback
	s.GradedBy = gradedBy
	copy := *s
	return &copy, nil
}

func (f *fakeGroupSubmissionStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submissions)
}

type fakeBlobStore struct {
	mu      sync.Mutex
	uploads []string
	fail    bool
}

func (f *fakeBlobStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", fmt.Errorf("bucket unavailable")
	}
	f.uploads = append(f.uploads, objectName)
	return "http://blobs.local/" + objectName, nil
}

func (f *fakeBlobStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}
