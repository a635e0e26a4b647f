package models

import "time"

// Group owns a roster of student ids and at most one assignment
// submission. Locked flips true exactly once, atomically with the link to
// the submission; once locked no further uploads are accepted from any
// member.
type Group struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	GroupNumber  int       `bson:"group_number" json:"group_number"`
	Students     []string  `bson:"students" json:"students"`
	SubmissionID string    `bson:"submission_id,omitempty" json:"submission_id,omitempty"`
	Score        *int      `bson:"score,omitempty" json:"score,omitempty"`
	Locked       bool      `bson:"locked" json:"locked"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// GroupSubmission is the single assignment upload for a group. Created
// once when the group's lock transitions; the grading fields are the only
// part mutated afterwards.
type GroupSubmission struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	GroupID     string     `bson:"group_id" json:"group_id"`
	GroupNumber int        `bson:"group_number" json:"group_number"`
	FileURL     string     `bson:"file_url" json:"file_url"`
	FileName    string     `bson:"file_name" json:"file_name"`
	UploadedBy  string     `bson:"uploaded_by" json:"uploaded_by"`
	UploadedAt  time.Time  `bson:"uploaded_at" json:"uploaded_at"`
	Score       *int       `bson:"score,omitempty" json:"score,omitempty"`
	Feedback    string     `bson:"feedback,omitempty" json:"feedback,omitempty"`
	GradedBy    string     `bson:"graded_by,omitempty" json:"graded_by,omitempty"`
	GradedAt    *time.Time `bson:"graded_at,omitempty" json:"graded_at,omitempty"`
}
