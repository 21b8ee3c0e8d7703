package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ideaforge-backend/models"
	"ideaforge-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdeaHandler handles HTTP requests for ideas, votes and comments
type IdeaHandler struct {
	ideaService      *service.IdeaService
	communityService *service.CommunityService
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(ideaService *service.IdeaService, communityService *service.CommunityService) *IdeaHandler {
	return &IdeaHandler{
		ideaService:      ideaService,
		communityService: communityService,
	}
}

// GenerateIdeasRequest represents the request body for generating ideas
type GenerateIdeasRequest struct {
	UserID        string             `json:"userId" binding:"required"`
	FarcasterID   *string            `json:"farcasterId"`
	Profile       models.UserProfile `json:"profile"`
	PreviousIdeas []string           `json:"previousIdeas"`
}

// GenerateIdeas handles POST /api/ideas/generate
func (h *IdeaHandler) GenerateIdeas(c *gin.Context) {
	var req GenerateIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.ideaService.GenerateIdeas(c.Request.Context(), service.GenerateIdeasRequest{
		UserID:        req.UserID,
		FarcasterID:   req.FarcasterID,
		Profile:       req.Profile,
		PreviousIdeas: req.PreviousIdeas,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"data":         result.Ideas,
		"message":      result.Message,
		"degraded":     result.Degraded,
		"generationId": result.GenerationID,
	})
}

// GetCommunityIdeas handles GET /api/ideas/community
func (h *IdeaHandler) GetCommunityIdeas(c *gin.Context) {
	sortBy, ok := models.ParseSortOrder(c.Query("sortBy"))
	if !ok {
		respondServiceError(c, service.ErrInvalidSortOrder)
		return
	}

	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a positive integer")
		return
	}

	result, err := h.ideaService.GetCommunityIdeas(c.Request.Context(), service.GetCommunityIdeasRequest{
		SortBy: sortBy,
		Limit:  limit,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"success": false,
			"data":    result.Ideas,
			"error": gin.H{
				"code":    "STORE_ERROR",
				"message": "Failed to load community ideas, please retry",
			},
		})
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Ideas,
	})
}

// GetIdea handles GET /api/ideas/:id
func (h *IdeaHandler) GetIdea(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.ideaService.GetIdea(c.Request.Context(), service.GetIdeaRequest{IdeaID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Idea,
	})
}

// VoteRequest represents the request body for voting on an idea
type VoteRequest struct {
	UserID   string `json:"userId" binding:"required"`
	VoteType string `json:"voteType" binding:"required"`
}

var voteMessages = map[models.VoteAction]string{
	models.VoteActionInsert:  "Vote recorded",
	models.VoteActionUpdate:  "Vote changed",
	models.VoteActionRetract: "Vote removed",
}

// VoteOnIdea handles POST /api/ideas/:id/votes
func (h *IdeaHandler) VoteOnIdea(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.communityService.Vote(c.Request.Context(), service.VoteRequest{
		IdeaID:   id,
		UserID:   req.UserID,
		VoteType: models.VoteType(req.VoteType),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    true,
		"message": voteMessages[result.Action],
		"action":  result.Action,
	})
}

// CommentRequest represents the request body for commenting on an idea
type CommentRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CommentOnIdea handles POST /api/ideas/:id/comments
func (h *IdeaHandler) CommentOnIdea(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.communityService.Comment(c.Request.Context(), service.CommentRequest{
		IdeaID:  id,
		UserID:  req.UserID,
		Content: req.Content,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    true,
		"message": "Comment added",
		"comment": result.Comment,
	})
}

// ListUserIdeas handles GET /api/users/:id/ideas
func (h *IdeaHandler) ListUserIdeas(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a positive integer")
		return
	}

	result, err := h.ideaService.ListUserIdeas(c.Request.Context(), service.ListUserIdeasRequest{
		UserID: c.Param("id"),
		Limit:  limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Ideas,
	})
}

// GetCompletion handles GET /api/generations/:id/completion
func (h *IdeaHandler) GetCompletion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.ideaService.GetCompletion(c.Request.Context(), service.GetCompletionRequest{GenerationID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"generationId": id,
			"completion":   result.Completion,
		},
	})
}

// GetOptions handles GET /api/options
func (h *IdeaHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"skills":              models.SkillOptions,
			"interests":           models.InterestOptions,
			"capitalRanges":       models.CapitalRanges,
			"viabilityThresholds": models.ViabilityThresholds,
		},
	})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid id format")
		return uuid.Nil, false
	}
	return id, true
}

// queryLimit reads ?limit=; 0 means the service default
func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errors.New("invalid limit")
	}
	return limit, nil
}

func statusFor(err error) int {
	if errors.Is(err, service.ErrInvalidSortOrder) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
