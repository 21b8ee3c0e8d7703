package service

import (
	"context"

	"ideaforge-backend/models"

	"github.com/google/uuid"
)

// IdeaStore persists generated ideas and the users who own them
type IdeaStore interface {
	// SaveGeneration upserts the user and inserts the ideas atomically
	SaveGeneration(ctx context.Context, user *models.User, ideas []models.GeneratedIdea) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.GeneratedIdea, error)
	List(ctx context.Context, sortBy models.SortOrder, limit int) ([]models.GeneratedIdea, error)
	ListByUserID(ctx context.Context, userID string, limit int) ([]models.GeneratedIdea, error)
}

// VoteStore holds at most one vote per (idea, user)
type VoteStore interface {
	// Cast resolves and applies the vote atomically for the (idea, user) pair
	Cast(ctx context.Context, ideaID uuid.UUID, userID string, voteType models.VoteType) (models.VoteAction, error)
	ListByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]models.CommunityVote, error)
}

// CommentStore appends comments
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]models.Comment, error)
}

// FeedCache caches ranked community pages under a version counter.
// A page must be stored with the version read before it was loaded.
type FeedCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, sortBy models.SortOrder, limit int) ([]models.GeneratedIdea, bool, error)
	Set(ctx context.Context, version int64, sortBy models.SortOrder, limit int, ideas []models.GeneratedIdea) error
	Invalidate(ctx context.Context) error
}

// CompletionArchive keeps the raw model completion of each generation
type CompletionArchive interface {
	SaveCompletion(ctx context.Context, generationID uuid.UUID, completion string) error
	LoadCompletion(ctx context.Context, generationID uuid.UUID) (string, error)
}
