package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVote(t *testing.T) {
	up, down := VoteUp, VoteDown

	assert.Equal(t, VoteActionInsert, ResolveVote(nil, VoteUp))
	assert.Equal(t, VoteActionRetract, ResolveVote(&up, VoteUp))
	assert.Equal(t, VoteActionRetract, ResolveVote(&down, VoteDown))
	assert.Equal(t, VoteActionUpdate, ResolveVote(&up, VoteDown))
	assert.Equal(t, VoteActionUpdate, ResolveVote(&down, VoteUp))
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{
		"":          SortPopular,
		"recent":    SortRecent,
		"popular":   SortPopular,
		"viability": SortViability,
	} {
		got, ok := ParseSortOrder(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	_, ok := ParseSortOrder("Recent")
	assert.False(t, ok)
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierExcellent, TierFor(100))
	assert.Equal(t, TierExcellent, TierFor(80))
	assert.Equal(t, TierGood, TierFor(79))
	assert.Equal(t, TierGood, TierFor(60))
	assert.Equal(t, TierFair, TierFor(40))
	assert.Equal(t, TierPoor, TierFor(39))
	assert.Equal(t, TierPoor, TierFor(0))
}

func TestClampViabilityScore(t *testing.T) {
	assert.Equal(t, 0, ClampViabilityScore(-10))
	assert.Equal(t, 55, ClampViabilityScore(55))
	assert.Equal(t, 100, ClampViabilityScore(101))
}

func TestGeneratedIdea_MarshalJSON(t *testing.T) {
	idea := GeneratedIdea{
		Title:                "AI-Powered Fitness Coach",
		MarketViabilityScore: 78,
		Votes: []CommunityVote{
			{UserID: "user2", VoteType: VoteUp},
			{UserID: "user3", VoteType: VoteUp},
			{UserID: "user4", VoteType: VoteDown},
		},
	}

	data, err := json.Marshal(idea)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "AI-Powered Fitness Coach", out["title"])
	assert.EqualValues(t, 2, out["upvotes"])
	assert.EqualValues(t, 1, out["downvotes"])
	assert.EqualValues(t, 1, out["popularity"])
	assert.EqualValues(t, 67, out["voteRatio"])
	assert.Equal(t, "good", out["viabilityTier"])
	assert.Equal(t, []any{}, out["comments"], "nil relations encode as empty arrays")

	var back GeneratedIdea
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 1, back.Popularity())
}

func TestGeneratedIdea_VoteRatioWithoutVotes(t *testing.T) {
	idea := GeneratedIdea{}
	assert.Equal(t, 0, idea.VoteRatio())
	assert.Equal(t, 0, idea.Popularity())
}

func TestBusinessModelCanvas_Scan(t *testing.T) {
	var c BusinessModelCanvas
	require.NoError(t, c.Scan([]byte(`{"valueProposition":"v","channels":["a"]}`)))
	assert.Equal(t, "v", c.ValueProposition)
	assert.Equal(t, []string{"a"}, c.Channels)

	require.NoError(t, c.Scan(nil))
	assert.Equal(t, BusinessModelCanvas{}, c)

	assert.Error(t, c.Scan(42))

	v, err := BusinessModelCanvas{ValueProposition: "x"}.Value()
	require.NoError(t, err)
	assert.Contains(t, string(v.([]byte)), `"valueProposition":"x"`)
}
