package models

// Question is one multiple-choice item from the question bank. The bank is
// read-only ground truth for scoring; CorrectAnswer is never included in
// any student-facing response.
type Question struct {
	ID            string   `bson:"_id,omitempty" json:"id"`
	Text          string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer int      `bson:"correct_answer" json:"correct_answer"`
	TopicID       string   `bson:"topic_id" json:"topic_id"`
}

// MaxOptionIndex is the highest valid option index. Questions are fixed
// four-option multiple choice.
const MaxOptionIndex = 3
