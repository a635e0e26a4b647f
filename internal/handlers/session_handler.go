package handlers

import (
	"net/http"

	"quiz-integrity-service/internal/auth"
	"quiz-integrity-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// StartQuiz issues or restores the caller's session for a topic.
func (h *SessionHandler) StartQuiz(c *gin.Context) {
	var req struct {
		TopicID string `json:"topicId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topicId is required"})
		return
	}

	session, restored, err := h.Service.StartSession(
		c.Request.Context(),
		auth.UserID(c),
		req.TopicID,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	if restored {
		c.JSON(http.StatusOK, gin.H{
			"sessionToken": session.SessionToken,
			"expiresAt":    session.ExpiresAt,
			"message":      "Existing session restored",
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"sessionToken": session.SessionToken,
		"expiresAt":    session.ExpiresAt,
		"message":      "Session created successfully",
	})
}

// CheckCompletion reports whether the caller already completed a topic.
func (h *SessionHandler) CheckCompletion(c *gin.Context) {
	topicID := c.Query("topicId")
	if topicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topicId query parameter is required"})
		return
	}

	submission, err := h.Service.CheckCompletion(c.Request.Context(), auth.UserID(c), topicID)
	if err != nil {
		respondError(c, err)
		return
	}

	if submission == nil {
		c.JSON(http.StatusOK, gin.H{"completed": false, "submission": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"completed": true,
		"submission": gin.H{
			"id":          submission.ID,
			"score":       submission.Score,
			"percentage":  submission.Percentage,
			"completedAt": submission.CreatedAt,
		},
	})
}
