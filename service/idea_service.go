package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ideaforge-backend/llm"
	"ideaforge-backend/models"
	"ideaforge-backend/repository"
	"ideaforge-backend/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultCommunityLimit    = 20
	MaxCommunityLimit        = 100
	DefaultGenerationTimeout = 60 * time.Second
)

// IdeaService runs the generation pipeline and serves stored ideas
type IdeaService struct {
	model    llm.Client
	ideas    IdeaStore
	votes    VoteStore
	comments CommentStore
	cache    FeedCache
	archive  CompletionArchive
	logger   *zap.Logger
	timeout  time.Duration
	now      func() time.Time
}

// IdeaServiceOption is a functional option for IdeaService
type IdeaServiceOption func(*IdeaService)

// WithModelClient sets the language model client
func WithModelClient(client llm.Client) IdeaServiceOption {
	return func(s *IdeaService) {
		s.model = client
	}
}

// WithIdeaStore sets the idea store
func WithIdeaStore(store IdeaStore) IdeaServiceOption {
	return func(s *IdeaService) {
		s.ideas = store
	}
}

// WithVoteStore sets the vote store
func WithVoteStore(store VoteStore) IdeaServiceOption {
	return func(s *IdeaService) {
		s.votes = store
	}
}

// WithCommentStore sets the comment store
func WithCommentStore(store CommentStore) IdeaServiceOption {
	return func(s *IdeaService) {
		s.comments = store
	}
}

// WithFeedCache sets the community feed cache
func WithFeedCache(cache FeedCache) IdeaServiceOption {
	return func(s *IdeaService) {
		s.cache = cache
	}
}

// WithCompletionArchive sets where raw completions are archived
func WithCompletionArchive(archive CompletionArchive) IdeaServiceOption {
	return func(s *IdeaService) {
		s.archive = archive
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) IdeaServiceOption {
	return func(s *IdeaService) {
		s.logger = logger
	}
}

// WithGenerationTimeout bounds each model call
func WithGenerationTimeout(d time.Duration) IdeaServiceOption {
	return func(s *IdeaService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) IdeaServiceOption {
	return func(s *IdeaService) {
		s.now = now
	}
}

// NewIdeaService creates a new idea service
func NewIdeaService(opts ...IdeaServiceOption) *IdeaService {
	s := &IdeaService{
		logger:  zap.NewNop(),
		timeout: DefaultGenerationTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateIdeasRequest represents a request to generate ideas
type GenerateIdeasRequest struct {
	UserID        string
	FarcasterID   *string
	Profile       models.UserProfile
	PreviousIdeas []string
}

// GenerateIdeasResult represents the result of a generation.
// Degraded is set when the fallback set was served instead of model output.
type GenerateIdeasResult struct {
	Ideas        []models.GeneratedIdea
	GenerationID uuid.UUID
	Degraded     bool
	FailureKind  GenerationFailure
	Message      string
}

// GenerateIdeas validates the profile, asks the model for ideas and persists
// them together with the user's profile. Model failures never surface as
// errors: the fallback set is returned instead and nothing is persisted.
func (s *IdeaService) GenerateIdeas(ctx context.Context, req GenerateIdeasRequest) (*GenerateIdeasResult, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, ErrMissingUserID
	}

	profile := NormalizeProfile(req.Profile)
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}

	generationID := uuid.New()
	parsed, err := s.complete(ctx, generationID, profile, req.PreviousIdeas)
	if err != nil {
		kind := classifyFailure(err)
		s.logger.Warn("serving fallback ideas",
			zap.String("user_id", userID),
			zap.String("generation_id", generationID.String()),
			zap.String("failure", string(kind)),
			zap.Error(err),
		)
		return &GenerateIdeasResult{
			Ideas:        FallbackIdeas(userID, s.now()),
			GenerationID: generationID,
			Degraded:     true,
			FailureKind:  kind,
			Message:      MessageFallback,
		}, nil
	}

	ideas := stampIdeas(parsed, userID, generationID, s.now())

	if s.ideas != nil {
		user := &models.User{
			UserID:       userID,
			FarcasterID:  req.FarcasterID,
			Skills:       profile.Skills,
			Interests:    profile.Interests,
			CapitalRange: profile.CapitalRange,
		}
		if err := s.ideas.SaveGeneration(ctx, user, ideas); err != nil {
			return nil, fmt.Errorf("%w: save generation: %w", ErrStore, err)
		}
		s.invalidateFeed(ctx)
	}

	s.logger.Info("ideas generated",
		zap.String("user_id", userID),
		zap.String("generation_id", generationID.String()),
		zap.Int("count", len(ideas)),
	)

	return &GenerateIdeasResult{
		Ideas:        ideas,
		GenerationID: generationID,
		Message:      MessageGenerated,
	}, nil
}

// complete runs the time-bounded model call and parses its output
func (s *IdeaService) complete(ctx context.Context, generationID uuid.UUID, profile models.UserProfile, previous []string) ([]models.GeneratedIdea, error) {
	if s.model == nil {
		return nil, errors.New("model client not set")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	completion, err := s.model.Complete(callCtx, llm.Request{
		System:          SystemInstruction,
		User:            BuildPrompt(profile, previous),
		Temperature:     GenerationTemp,
		MaxOutputTokens: GenerationMaxTokens,
		JSON:            true,
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
		return nil, err
	}
	if strings.TrimSpace(completion) == "" {
		return nil, llm.ErrEmptyResponse
	}

	s.archiveCompletion(ctx, generationID, completion)

	return ParseIdeas(completion)
}

func (s *IdeaService) archiveCompletion(ctx context.Context, generationID uuid.UUID, completion string) {
	if s.archive == nil {
		return
	}
	if err := s.archive.SaveCompletion(ctx, generationID, completion); err != nil {
		s.logger.Warn("failed to archive completion",
			zap.String("generation_id", generationID.String()),
			zap.Error(err),
		)
	}
}

// GetCommunityIdeasRequest represents a request for the community feed
type GetCommunityIdeasRequest struct {
	SortBy models.SortOrder
	Limit  int
}

// GetCommunityIdeasResult represents a ranked community page
type GetCommunityIdeasResult struct {
	Ideas []models.GeneratedIdea
}

// GetCommunityIdeas lists stored ideas with their votes and comments, ranked
// by the requested order. On a store error the result holds an empty slice.
func (s *IdeaService) GetCommunityIdeas(ctx context.Context, req GetCommunityIdeasRequest) (*GetCommunityIdeasResult, error) {
	empty := &GetCommunityIdeasResult{Ideas: []models.GeneratedIdea{}}

	sortBy, ok := models.ParseSortOrder(string(req.SortBy))
	if !ok {
		return empty, ErrInvalidSortOrder
	}
	limit := normalizeLimit(req.Limit)

	if s.ideas == nil {
		return empty, fmt.Errorf("%w: idea store not set", ErrStore)
	}

	// cacheable stays false when the version could not be read
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		v, err := s.cache.Version(ctx)
		if err != nil {
			s.logger.Warn("feed cache version read failed", zap.Error(err))
		} else {
			version, cacheable = v, true
			cached, hit, err := s.cache.Get(ctx, version, sortBy, limit)
			if err != nil {
				s.logger.Warn("feed cache read failed", zap.Error(err))
			} else if hit {
				return &GetCommunityIdeasResult{Ideas: cached}, nil
			}
		}
	}

	ideas, err := s.ideas.List(ctx, sortBy, limit)
	if err != nil {
		return empty, fmt.Errorf("%w: list ideas: %w", ErrStore, err)
	}

	if err := s.attachRelations(ctx, ideas); err != nil {
		return empty, err
	}

	ranked := RankIdeas(ideas, sortBy)

	if cacheable {
		if err := s.cache.Set(ctx, version, sortBy, limit, ranked); err != nil {
			s.logger.Warn("feed cache write failed", zap.Error(err))
		}
	}

	return &GetCommunityIdeasResult{Ideas: ranked}, nil
}

// GetIdeaRequest represents a request for one idea
type GetIdeaRequest struct {
	IdeaID uuid.UUID
}

// GetIdeaResult represents one idea with its relations
type GetIdeaResult struct {
	Idea *models.GeneratedIdea
}

// GetIdea retrieves one idea with votes and comments
func (s *IdeaService) GetIdea(ctx context.Context, req GetIdeaRequest) (*GetIdeaResult, error) {
	if s.ideas == nil {
		return nil, fmt.Errorf("%w: idea store not set", ErrStore)
	}

	idea, err := s.ideas.GetByID(ctx, req.IdeaID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, fmt.Errorf("%w: get idea: %w", ErrStore, err)
	}

	ideas := []models.GeneratedIdea{*idea}
	if err := s.attachRelations(ctx, ideas); err != nil {
		return nil, err
	}

	return &GetIdeaResult{Idea: &ideas[0]}, nil
}

// ListUserIdeasRequest represents a request for one user's ideas
type ListUserIdeasRequest struct {
	UserID string
	Limit  int
}

// ListUserIdeasResult represents a user's ideas, newest first
type ListUserIdeasResult struct {
	Ideas []models.GeneratedIdea
}

// ListUserIdeas lists the ideas generated for a user
func (s *IdeaService) ListUserIdeas(ctx context.Context, req ListUserIdeasRequest) (*ListUserIdeasResult, error) {
	empty := &ListUserIdeasResult{Ideas: []models.GeneratedIdea{}}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return empty, ErrMissingUserID
	}
	if s.ideas == nil {
		return empty, fmt.Errorf("%w: idea store not set", ErrStore)
	}

	ideas, err := s.ideas.ListByUserID(ctx, userID, normalizeLimit(req.Limit))
	if err != nil {
		return empty, fmt.Errorf("%w: list user ideas: %w", ErrStore, err)
	}

	if err := s.attachRelations(ctx, ideas); err != nil {
		return empty, err
	}

	return &ListUserIdeasResult{Ideas: RankIdeas(ideas, models.SortRecent)}, nil
}

// GetCompletionRequest represents a request for an archived completion
type GetCompletionRequest struct {
	GenerationID uuid.UUID
}

// GetCompletionResult holds the raw model output of a generation
type GetCompletionResult struct {
	Completion string
}

// GetCompletion loads the archived raw completion of a generation
func (s *IdeaService) GetCompletion(ctx context.Context, req GetCompletionRequest) (*GetCompletionResult, error) {
	if s.archive == nil {
		return nil, ErrCompletionNotFound
	}

	completion, err := s.archive.LoadCompletion(ctx, req.GenerationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCompletionNotFound
		}
		return nil, fmt.Errorf("%w: load completion: %w", ErrStore, err)
	}

	return &GetCompletionResult{Completion: completion}, nil
}

// attachRelations loads votes and comments for the ideas concurrently
func (s *IdeaService) attachRelations(ctx context.Context, ideas []models.GeneratedIdea) error {
	if len(ideas) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(ideas))
	for i := range ideas {
		ids[i] = ideas[i].IdeaID
	}

	var (
		votes    map[uuid.UUID][]models.CommunityVote
		comments map[uuid.UUID][]models.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.votes != nil {
		g.Go(func() error {
			var err error
			votes, err = s.votes.ListByIdeaIDs(gctx, ids)
			return err
		})
	}
	if s.comments != nil {
		g.Go(func() error {
			var err error
			comments, err = s.comments.ListByIdeaIDs(gctx, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: load votes and comments: %w", ErrStore, err)
	}

	for i := range ideas {
		ideas[i].Votes = votes[ideas[i].IdeaID]
		if ideas[i].Votes == nil {
			ideas[i].Votes = []models.CommunityVote{}
		}
		ideas[i].Comments = comments[ideas[i].IdeaID]
		if ideas[i].Comments == nil {
			ideas[i].Comments = []models.Comment{}
		}
	}

	return nil
}

func (s *IdeaService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("feed cache invalidation failed", zap.Error(err))
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultCommunityLimit
	}
	if limit > MaxCommunityLimit {
		return MaxCommunityLimit
	}
	return limit
}
