package models

import (
	"time"

	"github.com/google/uuid"
)

// VoteType is the direction of a community vote
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Valid reports whether the vote type is up or down
func (t VoteType) Valid() bool {
	return t == VoteUp || t == VoteDown
}

// CommunityVote represents a vote entity; at most one per (idea, user)
type CommunityVote struct {
	VoteID    uuid.UUID `json:"voteId"`
	IdeaID    uuid.UUID `json:"ideaId"`
	UserID    string    `json:"userId"`
	VoteType  VoteType  `json:"voteType"`
	CreatedAt time.Time `json:"createdAt"`
}

// VoteAction is the write a vote request resolves to
type VoteAction string

const (
	VoteActionInsert  VoteAction = "insert"
	VoteActionUpdate  VoteAction = "update"
	VoteActionRetract VoteAction = "retract"
)

// ResolveVote applies the toggle policy: no vote inserts, a different type
// overwrites, and repeating the same type retracts. existing is nil when the
// user has not voted on the idea.
func ResolveVote(existing *VoteType, requested VoteType) VoteAction {
	switch {
	case existing == nil:
		return VoteActionInsert
	case *existing == requested:
		return VoteActionRetract
	default:
		return VoteActionUpdate
	}
}
