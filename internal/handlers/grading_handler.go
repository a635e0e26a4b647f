package handlers

import (
	"net/http"

	"quiz-integrity-service/internal/auth"
	"quiz-integrity-service/internal/models"
	"quiz-integrity-service/internal/service"

	"github.com/gin-gonic/gin"
)

type GradingHandler struct {
	Service *service.GradingService
}

func NewGradingHandler(s *service.GradingService) *GradingHandler {
	return &GradingHandler{Service: s}
}

// Grade assigns a score and feedback to a group submission. Admin only;
// re-grading overwrites.
func (h *GradingHandler) Grade(c *gin.Context) {
	var req struct {
		Score    *int   `json:"score"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
		respondError(c, models.ErrInvalidScore)
		return
	}

	updated, err := h.Service.Grade(c.Request.Context(), auth.UserID(c), c.Param("id"), *req.Score, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Submission graded successfully",
		"submission": gin.H{
			"id":       updated.ID,
			"score":    updated.Score,
			"feedback": updated.Feedback,
			"gradedAt": updated.GradedAt,
		},
	})
}

// Get returns one group submission for the admin detail view.
func (h *GradingHandler) Get(c *gin.Context) {
	submission, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

// List returns all group submissions for the admin grading view.
func (h *GradingHandler) List(c *gin.Context) {
	submissions, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}
