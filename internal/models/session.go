package models

import "time"

const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionExpired   = "expired"
)

// QuizSession is one timed attempt at a topic. At most one active session
// exists per (user, topic); the token is the bearer credential the client
// presents on violation reports and submission.
type QuizSession struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	TopicID      string    `bson:"topic_id" json:"topic_id"`
	SessionToken string    `bson:"session_token" json:"session_token"`
	StartedAt    time.Time `bson:"started_at" json:"started_at"`
	ExpiresAt    time.Time `bson:"expires_at" json:"expires_at"`
	TabSwitches  int       `bson:"tab_switches" json:"tab_switches"`
	IP           string    `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent    string    `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Expired reports whether the session's window has passed. Expiry is
// checked lazily against the wall clock, there is no background sweep.
func (s *QuizSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// ValidFor reports whether the session can still accept violation reports.
func (s *QuizSession) ValidFor(now time.Time) bool {
	return s.Status == SessionActive && !s.Expired(now)
}
