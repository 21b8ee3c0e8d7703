package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents an append-only comment on an idea
type Comment struct {
	CommentID uuid.UUID `json:"commentId"`
	IdeaID    uuid.UUID `json:"ideaId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
