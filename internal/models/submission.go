package models

import "time"

// Submission is a graded quiz result, unique per (user, topic). Score,
// total and percentage are computed on the server from the question bank;
// the raw answers are kept as submitted.
type Submission struct {
	ID               string         `bson:"_id,omitempty" json:"id"`
	UserID           string         `bson:"user_id" json:"user_id"`
	TopicID          string         `bson:"topic_id" json:"topic_id"`
	TopicName        string         `bson:"topic_name" json:"topic_name"`
	Answers          map[string]int `bson:"answers" json:"answers"`
	Score            int            `bson:"score" json:"score"`
	TotalQuestions   int            `bson:"total_questions" json:"total_questions"`
	Percentage       int            `bson:"percentage" json:"percentage"`
	TimeSpentSeconds int            `bson:"time_spent" json:"time_spent"`
	TabSwitches      int            `bson:"tab_switches" json:"tab_switches"`
	Late             bool           `bson:"late,omitempty" json:"late,omitempty"`
	CreatedAt        time.Time      `bson:"created_at" json:"created_at"`
}
