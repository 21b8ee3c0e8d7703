package repository

import (
	"context"

	"ideaforge-backend/models"

	"github.com/google/uuid"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create appends a comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, idea_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(
		ctx, query,
		comment.CommentID,
		comment.IdeaID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
	)

	return translateError(err)
}

// ListByIdeaIDs returns the comments of each idea, oldest first
func (r *CommentRepository) ListByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]models.Comment, error) {
	query := `
		SELECT id, idea_id, user_id, content, created_at
		FROM comments
		WHERE idea_id = ANY($1::uuid[])
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, uuidStrings(ideaIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make(map[uuid.UUID][]models.Comment, len(ideaIDs))
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.CommentID, &c.IdeaID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments[c.IdeaID] = append(comments[c.IdeaID], c)
	}

	return comments, rows.Err()
}
