package handlers

import (
	"errors"
	"net/http"

	"ideaforge-backend/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps service errors onto status codes and error codes
func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, service.ErrInvalidProfile):
		respondError(c, http.StatusBadRequest, "INVALID_PROFILE", err.Error())
	case errors.Is(err, service.ErrMissingUserID),
		errors.Is(err, service.ErrInvalidVoteType),
		errors.Is(err, service.ErrInvalidSortOrder):
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, service.ErrIdeaNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Idea not found")
	case errors.Is(err, service.ErrCompletionNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Completion not found")
	case errors.Is(err, service.ErrStore):
		respondError(c, http.StatusInternalServerError, "STORE_ERROR", "Storage is unavailable, please retry")
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
