package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ideaforge-backend/models"
	"ideaforge-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommunityService handles votes and comments on ideas
type CommunityService struct {
	votes    VoteStore
	comments CommentStore
	cache    FeedCache
	logger   *zap.Logger
	now      func() time.Time
}

// CommunityServiceOption is a functional option for CommunityService
type CommunityServiceOption func(*CommunityService)

// CommunityWithVoteStore sets the vote store
func CommunityWithVoteStore(store VoteStore) CommunityServiceOption {
	return func(s *CommunityService) {
		s.votes = store
	}
}

// CommunityWithCommentStore sets the comment store
func CommunityWithCommentStore(store CommentStore) CommunityServiceOption {
	return func(s *CommunityService) {
		s.comments = store
	}
}

// CommunityWithFeedCache sets the feed cache invalidated on every write
func CommunityWithFeedCache(cache FeedCache) CommunityServiceOption {
	return func(s *CommunityService) {
		s.cache = cache
	}
}

// CommunityWithLogger sets the logger
func CommunityWithLogger(logger *zap.Logger) CommunityServiceOption {
	return func(s *CommunityService) {
		s.logger = logger
	}
}

// NewCommunityService creates a new community service
func NewCommunityService(opts ...CommunityServiceOption) *CommunityService {
	s := &CommunityService{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VoteRequest represents a vote on an idea
type VoteRequest struct {
	IdeaID   uuid.UUID
	UserID   string
	VoteType models.VoteType
}

// VoteResult reports which write the vote resolved to
type VoteResult struct {
	Action models.VoteAction
}

// Vote casts, switches or retracts the user's vote on an idea
func (s *CommunityService) Vote(ctx context.Context, req VoteRequest) (*VoteResult, error) {
	if s.votes == nil {
		return nil, errors.New("vote store not set")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrMissingUserID
	}
	if !req.VoteType.Valid() {
		return nil, ErrInvalidVoteType
	}

	action, err := s.votes.Cast(ctx, req.IdeaID, req.UserID, req.VoteType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, fmt.Errorf("%w: cast vote: %w", ErrStore, err)
	}

	s.invalidateFeed(ctx)

	s.logger.Info("vote recorded",
		zap.String("idea_id", req.IdeaID.String()),
		zap.String("user_id", req.UserID),
		zap.String("vote_type", string(req.VoteType)),
		zap.String("action", string(action)),
	)

	return &VoteResult{Action: action}, nil
}

// CommentRequest represents a new comment on an idea
type CommentRequest struct {
	IdeaID  uuid.UUID
	UserID  string
	Content string
}

// CommentResult holds the stored comment
type CommentResult struct {
	Comment *models.Comment
}

// Comment appends a comment to an idea
func (s *CommunityService) Comment(ctx context.Context, req CommentRequest) (*CommentResult, error) {
	if s.comments == nil {
		return nil, errors.New("comment store not set")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrMissingUserID
	}

	comment := &models.Comment{
		CommentID: uuid.New(),
		IdeaID:    req.IdeaID,
		UserID:    req.UserID,
		Content:   req.Content,
		CreatedAt: s.now(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, fmt.Errorf("%w: create comment: %w", ErrStore, err)
	}

	s.invalidateFeed(ctx)

	return &CommentResult{Comment: comment}, nil
}

func (s *CommunityService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("feed cache invalidation failed", zap.Error(err))
	}
}
