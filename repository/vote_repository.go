package repository

import (
	"context"
	"errors"
	"fmt"

	"ideaforge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// VoteRepository handles database operations for community votes
type VoteRepository struct {
	db DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Cast applies models.ResolveVote for (ideaID, userID) inside one transaction.
// A transaction-scoped advisory lock on the pair serializes concurrent votes
// from the same user, including the first insert when no row exists yet.
func (r *VoteRepository) Cast(ctx context.Context, ideaID uuid.UUID, userID string, voteType models.VoteType) (models.VoteAction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}

	action, err := castInTx(ctx, tx, ideaID, userID, voteType)
	if err != nil {
		_ = tx.Rollback(ctx)
		return "", translateError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit vote: %w", err)
	}

	return action, nil
}

func castInTx(ctx context.Context, tx pgx.Tx, ideaID uuid.UUID, userID string, voteType models.VoteType) (models.VoteAction, error) {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, voteLockKey(ideaID, userID))
	if err != nil {
		return "", fmt.Errorf("lock vote: %w", err)
	}

	var current string
	err = tx.QueryRow(ctx, `
		SELECT vote_type
		FROM community_votes
		WHERE idea_id = $1 AND user_id = $2
		FOR UPDATE`,
		ideaID, userID,
	).Scan(&current)

	var existing *models.VoteType
	switch {
	case err == nil:
		t := models.VoteType(current)
		existing = &t
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return "", fmt.Errorf("find vote: %w", err)
	}

	action := models.ResolveVote(existing, voteType)

	switch action {
	case models.VoteActionInsert:
		_, err = tx.Exec(ctx, `
			INSERT INTO community_votes (id, idea_id, user_id, vote_type)
			VALUES ($1, $2, $3, $4)`,
			uuid.New(), ideaID, userID, string(voteType),
		)
	case models.VoteActionUpdate:
		_, err = tx.Exec(ctx, `
			UPDATE community_votes SET vote_type = $3
			WHERE idea_id = $1 AND user_id = $2`,
			ideaID, userID, string(voteType),
		)
	case models.VoteActionRetract:
		_, err = tx.Exec(ctx, `
			DELETE FROM community_votes
			WHERE idea_id = $1 AND user_id = $2`,
			ideaID, userID,
		)
	}
	if err != nil {
		return "", fmt.Errorf("%s vote: %w", action, err)
	}

	return action, nil
}

func voteLockKey(ideaID uuid.UUID, userID string) string {
	return "vote:" + ideaID.String() + ":" + userID
}

// ListByIdeaIDs returns the votes of each idea, oldest first
func (r *VoteRepository) ListByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]models.CommunityVote, error) {
	query := `
		SELECT id, idea_id, user_id, vote_type, created_at
		FROM community_votes
		WHERE idea_id = ANY($1::uuid[])
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, uuidStrings(ideaIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := make(map[uuid.UUID][]models.CommunityVote, len(ideaIDs))
	for rows.Next() {
		var (
			v        models.CommunityVote
			voteType string
		)
		if err := rows.Scan(&v.VoteID, &v.IdeaID, &v.UserID, &voteType, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.VoteType = models.VoteType(voteType)
		votes[v.IdeaID] = append(votes[v.IdeaID], v)
	}

	return votes, rows.Err()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
