package repository

import (
	"context"
	"fmt"

	"ideaforge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IdeaRepository handles database operations for users and generated ideas
type IdeaRepository struct {
	db DB
}

// NewIdeaRepository creates a new idea repository
func NewIdeaRepository(db DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

const ideaColumns = `id, user_id, generation_id, title, description, skills_required,
			market_trend_analysis, market_viability_score, business_model_canvas,
			go_market_strategy, created_at`

// orderings maps each sort order to a fixed ORDER BY clause
var orderings = map[models.SortOrder]string{
	models.SortRecent:    "i.created_at DESC, i.id",
	models.SortViability: "i.market_viability_score DESC, i.created_at DESC, i.id",
	models.SortPopular:   "COALESCE(v.score, 0) DESC, i.created_at DESC, i.id",
}

// SaveGeneration upserts the user and inserts the ideas in one transaction
func (r *IdeaRepository) SaveGeneration(ctx context.Context, user *models.User, ideas []models.GeneratedIdea) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := upsertUser(ctx, tx, user); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	for i := range ideas {
		if err := insertIdea(ctx, tx, &ideas[i]); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit generation: %w", err)
	}

	return nil
}

func upsertUser(ctx context.Context, tx pgx.Tx, user *models.User) error {
	query := `
		INSERT INTO users (user_id, farcaster_id, skills, interests, capital_range)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			farcaster_id = COALESCE(EXCLUDED.farcaster_id, users.farcaster_id),
			skills = EXCLUDED.skills,
			interests = EXCLUDED.interests,
			capital_range = EXCLUDED.capital_range,
			updated_at = NOW()
		RETURNING premium_status, created_at, updated_at`

	err := tx.QueryRow(
		ctx, query,
		user.UserID,
		user.FarcasterID,
		user.Skills,
		user.Interests,
		user.CapitalRange,
	).Scan(&user.PremiumStatus, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

func insertIdea(ctx context.Context, tx pgx.Tx, idea *models.GeneratedIdea) error {
	canvas, err := idea.BusinessModelCanvas.Value()
	if err != nil {
		return fmt.Errorf("encode business model canvas: %w", err)
	}

	query := `
		INSERT INTO generated_ideas (` + ideaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = tx.Exec(
		ctx, query,
		idea.IdeaID,
		idea.UserID,
		idea.GenerationID,
		idea.Title,
		idea.Description,
		idea.SkillsRequired,
		idea.MarketTrendAnalysis,
		idea.MarketViabilityScore,
		canvas,
		idea.GoMarketStrategy,
		idea.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert idea: %w", err)
	}

	return nil
}

// GetByID retrieves an idea by ID without its votes and comments
func (r *IdeaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GeneratedIdea, error) {
	query := `SELECT ` + ideaColumns + ` FROM generated_ideas WHERE id = $1`

	idea, err := scanIdea(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}

	return idea, nil
}

// List returns up to limit ideas in store order for the sort. Popular order
// is computed over all votes so the limit applies to the global ranking.
func (r *IdeaRepository) List(ctx context.Context, sortBy models.SortOrder, limit int) ([]models.GeneratedIdea, error) {
	orderBy, ok := orderings[sortBy]
	if !ok {
		return nil, fmt.Errorf("unsupported sort order %q", sortBy)
	}

	query := `
		SELECT i.id, i.user_id, i.generation_id, i.title, i.description, i.skills_required,
			i.market_trend_analysis, i.market_viability_score, i.business_model_canvas,
			i.go_market_strategy, i.created_at
		FROM generated_ideas i
		LEFT JOIN (
			SELECT idea_id,
				SUM(CASE WHEN vote_type = 'up' THEN 1 ELSE -1 END) AS score
			FROM community_votes
			GROUP BY idea_id
		) v ON v.idea_id = i.id
		ORDER BY ` + orderBy + `
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIdeas(rows)
}

// ListByUserID returns a user's ideas newest first
func (r *IdeaRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]models.GeneratedIdea, error) {
	query := `
		SELECT ` + ideaColumns + `
		FROM generated_ideas
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIdeas(rows)
}

func scanIdea(row pgx.Row) (*models.GeneratedIdea, error) {
	idea := &models.GeneratedIdea{}
	var canvas []byte

	err := row.Scan(
		&idea.IdeaID,
		&idea.UserID,
		&idea.GenerationID,
		&idea.Title,
		&idea.Description,
		&idea.SkillsRequired,
		&idea.MarketTrendAnalysis,
		&idea.MarketViabilityScore,
		&canvas,
		&idea.GoMarketStrategy,
		&idea.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := idea.BusinessModelCanvas.Scan(canvas); err != nil {
		return nil, fmt.Errorf("decode business model canvas: %w", err)
	}

	return idea, nil
}

func collectIdeas(rows pgx.Rows) ([]models.GeneratedIdea, error) {
	ideas := []models.GeneratedIdea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, *idea)
	}
	return ideas, rows.Err()
}
