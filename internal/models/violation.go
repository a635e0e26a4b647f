package models

import "time"

const (
	ViolationTabSwitch     = "tab_switch"
	ViolationPageFocusLoss = "page_focus_loss"
	ViolationCopyPaste     = "copy_paste"
	ViolationDevtools      = "devtools"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// ViolationDetails is the client context captured with a report.
type ViolationDetails struct {
	IP                  string `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent           string `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	TimeIntoQuizSeconds int    `bson:"time_into_quiz,omitempty" json:"time_into_quiz,omitempty"`
}

// QuizViolation is one integrity signal observed by the client during an
// active session. Records are append-only; severity is derived on the
// server, never taken from the request.
type QuizViolation struct {
	ID            string           `bson:"_id,omitempty" json:"id"`
	UserID        string           `bson:"user_id" json:"user_id"`
	SessionID     string           `bson:"session_id" json:"session_id"`
	TopicID       string           `bson:"topic_id" json:"topic_id"`
	ViolationType string           `bson:"violation_type" json:"violation_type"`
	Severity      string           `bson:"severity" json:"severity"`
	Count         int              `bson:"count" json:"count"`
	Details       ViolationDetails `bson:"details" json:"details"`
	CreatedAt     time.Time        `bson:"created_at" json:"created_at"`
}

// KnownViolationType reports whether t is one of the recognized signals.
func KnownViolationType(t string) bool {
	switch t {
	case ViolationTabSwitch, ViolationPageFocusLoss, ViolationCopyPaste, ViolationDevtools:
		return true
	}
	return false
}
