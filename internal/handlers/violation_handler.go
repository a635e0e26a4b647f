package handlers

import (
	"net/http"
	"strconv"

	"quiz-integrity-service/internal/auth"
	"quiz-integrity-service/internal/repository"
	"quiz-integrity-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ViolationHandler struct {
	Service *service.ViolationService
}

func NewViolationHandler(s *service.ViolationService) *ViolationHandler {
	return &ViolationHandler{Service: s}
}

// Report logs one integrity violation against the caller's session.
func (h *ViolationHandler) Report(c *gin.Context) {
	var req struct {
		SessionToken  string `json:"sessionToken" binding:"required"`
		ViolationType string `json:"violationType" binding:"required"`
		Count         int    `json:"count"`
		TimeIntoQuiz  int    `json:"timeIntoQuiz"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionToken and violationType are required"})
		return
	}

	violation, err := h.Service.Report(
		c.Request.Context(),
		auth.UserID(c),
		req.SessionToken,
		req.ViolationType,
		req.Count,
		req.TimeIntoQuiz,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Violation logged",
		"violation": gin.H{
			"id":       violation.ID,
			"severity": violation.Severity,
		},
	})
}

// List returns violation records for admin review, filterable by user and
// severity.
func (h *ViolationHandler) List(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)
	if err != nil {
		limit = 100
	}

	violations, err := h.Service.List(c.Request.Context(), repository.ViolationFilter{
		UserID:   c.Query("userId"),
		Severity: c.Query("severity"),
		Limit:    limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, violations)
}
