package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"ideaforge-backend/llm"
	"ideaforge-backend/models"
	"ideaforge-backend/repository"
	"ideaforge-backend/storage"

	"github.com/google/uuid"
)

// fakeModel counts calls and replays a canned completion or error
type fakeModel struct {
	mu       sync.Mutex
	calls    int
	requests []llm.Request
	reply    string
	err      error
	block    bool // wait for ctx to end before returning
}

func (m *fakeModel) Complete(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.calls++
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.reply, m.err
}

func (m *fakeModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type memIdeaStore struct {
	mu      sync.Mutex
	users   map[string]models.User
	ideas   []models.GeneratedIdea
	votes   *memVoteStore
	saveErr error
	listErr error
}

func newMemIdeaStore(votes *memVoteStore) *memIdeaStore {
	return &memIdeaStore{users: map[string]models.User{}, votes: votes}
}

func (s *memIdeaStore) SaveGeneration(ctx context.Context, user *models.User, ideas []models.GeneratedIdea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.users[user.UserID] = *user
	for _, idea := range ideas {
		idea.Votes = nil
		idea.Comments = nil
		s.ideas = append(s.ideas, idea)
	}
	return nil
}

func (s *memIdeaStore) GetByID(ctx context.Context, id uuid.UUID) (*models.GeneratedIdea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, idea := range s.ideas {
		if idea.IdeaID == id {
			out := idea
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memIdeaStore) List(ctx context.Context, sortBy models.SortOrder, limit int) ([]models.GeneratedIdea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}

	out := make([]models.GeneratedIdea, len(s.ideas))
	copy(out, s.ideas)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	switch sortBy {
	case models.SortViability:
		sort.SliceStable(out, func(i, j int) bool { return out[i].MarketViabilityScore > out[j].MarketViabilityScore })
	case models.SortPopular:
		if s.votes != nil {
			sort.SliceStable(out, func(i, j int) bool { return s.votes.score(out[i].IdeaID) > s.votes.score(out[j].IdeaID) })
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memIdeaStore) ListByUserID(ctx context.Context, userID string, limit int) ([]models.GeneratedIdea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.GeneratedIdea
	for _, idea := range s.ideas {
		if idea.UserID == userID {
			out = append(out, idea)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memIdeaStore) has(id uuid.UUID) bool {
	_, err := s.GetByID(context.Background(), id)
	return err == nil
}

type voteKey struct {
	idea uuid.UUID
	user string
}

type memVoteStore struct {
	mu     sync.Mutex
	votes  map[voteKey]models.CommunityVote
	exists func(uuid.UUID) bool
	// afterRead runs once after the next ListByIdeaIDs snapshot is taken
	afterRead func()
}

func newMemVoteStore() *memVoteStore {
	return &memVoteStore{votes: map[voteKey]models.CommunityVote{}}
}

func (s *memVoteStore) Cast(ctx context.Context, ideaID uuid.UUID, userID string, voteType models.VoteType) (models.VoteAction, error) {
	if s.exists != nil && !s.exists(ideaID) {
		return "", repository.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{ideaID, userID}
	var existing *models.VoteType
	if v, ok := s.votes[key]; ok {
		t := v.VoteType
		existing = &t
	}

	action := models.ResolveVote(existing, voteType)
	switch action {
	case models.VoteActionInsert:
		s.votes[key] = models.CommunityVote{VoteID: uuid.New(), IdeaID: ideaID, UserID: userID, VoteType: voteType, CreatedAt: time.Now()}
	case models.VoteActionUpdate:
		v := s.votes[key]
		v.VoteType = voteType
		s.votes[key] = v
	case models.VoteActionRetract:
		delete(s.votes, key)
	}
	return action, nil
}

func (s *memVoteStore) ListByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]models.CommunityVote, error) {
	s.mu.Lock()
	want := map[uuid.UUID]bool{}
	for _, id := range ideaIDs {
		want[id] = true
	}
	out := map[uuid.UUID][]models.CommunityVote{}
	for k, v := range s.votes {
		if want[k.idea] {
			out[k.idea] = append(out[k.idea], v)
		}
	}
	hook := s.afterRead
	s.afterRead = nil
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (s *memVoteStore) rows(ideaID uuid.UUID, userID string) []models.CommunityVote {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.CommunityVote
	for k, v := range s.votes {
		if k.idea == ideaID && k.user == userID {
			out = append(out, v)
		}
	}
	return out
}

func (s *memVoteStore) score(ideaID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, v := range s.votes {
		if k.idea != ideaID {
			continue
		}
		if v.VoteType == models.VoteUp {
			n++
		} else {
			n--
		}
	}
	return n
}

type memCommentStore struct {
	mu       sync.Mutex
	comments []models.Comment
	exists   func(uuid.UUID) bool
	err      error
}

func (s *memCommentStore) Create(ctx context.Context, comment *models.Comment) error {
	if s.err != nil {
		return s.err
	}
	if s.exists != nil && !s.exists(comment.IdeaID) {
		return repository.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *memCommentStore) ListByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[uuid.UUID][]models.Comment{}
	for _, id := range ideaIDs {
		for _, c := range s.comments {
			if c.IdeaID == id {
				out[id] = append(out[id], c)
			}
		}
	}
	return out, nil
}

type memCache struct {
	mu          sync.Mutex
	version     int64
	pages       map[string][]models.GeneratedIdea
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{pages: map[string][]models.GeneratedIdea{}}
}

func cacheKey(version int64, sortBy models.SortOrder, limit int) string {
	return strconv.FormatInt(version, 10) + ":" + string(sortBy) + ":" + strconv.Itoa(limit)
}

func (c *memCache) Version(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, nil
}

func (c *memCache) Get(ctx context.Context, version int64, sortBy models.SortOrder, limit int) ([]models.GeneratedIdea, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ideas, ok := c.pages[cacheKey(version, sortBy, limit)]
	return ideas, ok, nil
}

func (c *memCache) Set(ctx context.Context, version int64, sortBy models.SortOrder, limit int, ideas []models.GeneratedIdea) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[cacheKey(version, sortBy, limit)] = ideas
	return nil
}

func (c *memCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.invalidated++
	return nil
}

type memArchive struct {
	mu    sync.Mutex
	saved map[uuid.UUID]string
}

func (a *memArchive) SaveCompletion(ctx context.Context, generationID uuid.UUID, completion string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.saved == nil {
		a.saved = map[uuid.UUID]string{}
	}
	a.saved[generationID] = completion
	return nil
}

func (a *memArchive) LoadCompletion(ctx context.Context, generationID uuid.UUID) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.saved[generationID]
	if !ok {
		return "", storage.ErrNotFound
	}
	return c, nil
}
