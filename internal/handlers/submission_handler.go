package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"quiz-integrity-service/internal/auth"
	"quiz-integrity-service/internal/config"
	"quiz-integrity-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	Service *service.SubmissionService
	Quiz    config.QuizConfig
}

func NewSubmissionHandler(s *service.SubmissionService, quiz config.QuizConfig) *SubmissionHandler {
	return &SubmissionHandler{Service: s, Quiz: quiz}
}

// Submit grades a quiz from the raw answers. The request carries no
// trusted score: any score or percentage field a client includes is logged
// as a tamper signal and otherwise ignored.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var req struct {
		TopicID      string         `json:"topicId"`
		Answers      map[string]int `json:"answers"`
		TimeSpent    *int           `json:"timeSpent"`
		SessionToken string         `json:"sessionToken"`
	}
	if err := json.Unmarshal(raw, &req); err != nil || req.TopicID == "" || req.Answers == nil || req.TimeSpent == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	userID := auth.UserID(c)
	h.logTamperSignals(raw, userID, req.TopicID)

	submission, err := h.Service.Submit(
		c.Request.Context(),
		userID,
		req.TopicID,
		h.Quiz.TopicLabel(req.TopicID),
		req.Answers,
		*req.TimeSpent,
		req.SessionToken,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Submission saved",
		"submission": gin.H{
			"id":             submission.ID,
			"score":          submission.Score,
			"totalQuestions": submission.TotalQuestions,
			"percentage":     submission.Percentage,
		},
	})
}

// List returns the caller's own submissions, newest first.
func (h *SubmissionHandler) List(c *gin.Context) {
	submissions, err := h.Service.ListByUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// logTamperSignals flags payloads that try to supply their own grade.
// Audit-only: the fields are never read for scoring.
func (h *SubmissionHandler) logTamperSignals(raw []byte, userID, topicID string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return
	}
	for _, key := range []string{"score", "percentage", "correctAnswers"} {
		if _, ok := fields[key]; ok {
			log.Printf("Tamper signal - User: %s, Topic: %s, client supplied %q in submit payload", userID, topicID, key)
		}
	}
}
