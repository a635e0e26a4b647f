package handlers

import (
	"io"
	"net/http"

	"quiz-integrity-service/internal/auth"
	"quiz-integrity-service/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	Service *service.GroupService
}

func NewGroupHandler(s *service.GroupService) *GroupHandler {
	return &GroupHandler{Service: s}
}

// Submit accepts the group's single assignment upload as multipart form
// data.
func (h *GroupHandler) Submit(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	submission, err := h.Service.SubmitAssignment(
		c.Request.Context(),
		auth.UserID(c),
		auth.Role(c),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		data,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assignment uploaded successfully",
		"submission": gin.H{
			"id":          submission.ID,
			"groupNumber": submission.GroupNumber,
			"fileUrl":     submission.FileURL,
			"fileName":    submission.FileName,
		},
	})
}

// Status returns the caller's group submission state.
func (h *GroupHandler) Status(c *gin.Context) {
	status, err := h.Service.Status(c.Request.Context(), auth.UserID(c), auth.Role(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
