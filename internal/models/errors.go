package models

import "errors"

// Domain errors. Handlers map these to HTTP status codes; repositories
// translate storage-level failures (duplicate key, lost conditional
// update) into them so raw driver errors never reach a caller.
var (
	ErrUnauthenticated       = errors.New("authentication required")
	ErrForbidden             = errors.New("insufficient role")
	ErrUnknownTopic          = errors.New("unknown quiz topic")
	ErrAlreadyCompleted      = errors.New("quiz already completed, no retakes allowed")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionExpired        = errors.New("session expired")
	ErrInvalidViolationType  = errors.New("invalid violation type")
	ErrQuestionsNotFound     = errors.New("quiz questions not found")
	ErrInvalidAnswer         = errors.New("invalid answers submitted")
	ErrNoGroupAssigned       = errors.New("you are not assigned to a group")
	ErrGroupNotFound         = errors.New("group not found")
	ErrGroupAlreadySubmitted = errors.New("your group has already submitted an assignment")
	ErrInvalidFile           = errors.New("only PDF files are allowed")
	ErrFileTooLarge          = errors.New("file size must be less than 10MB")
	ErrStorageFailure        = errors.New("failed to upload file to storage")
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrInvalidScore          = errors.New("score must be a number between 0 and 100")
)
