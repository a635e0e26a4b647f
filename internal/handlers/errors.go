package handlers

import (
	"errors"
	"log"
	"net/http"

	"quiz-integrity-service/internal/models"

	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to its HTTP status and stable message.
// Anything outside the taxonomy is reported as a generic server error so
// storage internals never leak to a caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrForbidden),
		errors.Is(err, models.ErrAlreadyCompleted):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnknownTopic),
		errors.Is(err, models.ErrInvalidViolationType),
		errors.Is(err, models.ErrQuestionsNotFound),
		errors.Is(err, models.ErrInvalidAnswer),
		errors.Is(err, models.ErrNoGroupAssigned),
		errors.Is(err, models.ErrGroupAlreadySubmitted),
		errors.Is(err, models.ErrInvalidFile),
		errors.Is(err, models.ErrFileTooLarge),
		errors.Is(err, models.ErrInvalidScore):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrSubmissionNotFound),
		errors.Is(err, models.ErrGroupNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrSessionExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrStorageFailure):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		log.Printf("Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
