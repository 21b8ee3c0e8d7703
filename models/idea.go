package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinViabilityScore = 0
	MaxViabilityScore = 100
)

// BusinessModelCanvas is the eight-block strategic summary attached to an idea
type BusinessModelCanvas struct {
	ValueProposition string   `json:"valueProposition"`
	CustomerSegments []string `json:"customerSegments"`
	Channels         []string `json:"channels"`
	RevenueStreams   []string `json:"revenueStreams"`
	KeyResources     []string `json:"keyResources"`
	KeyActivities    []string `json:"keyActivities"`
	KeyPartnerships  []string `json:"keyPartnerships"`
	CostStructure    []string `json:"costStructure"`
}

// Value implements driver.Valuer for JSONB
func (b BusinessModelCanvas) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for JSONB
func (b *BusinessModelCanvas) Scan(value any) error {
	if value == nil {
		*b = BusinessModelCanvas{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("unsupported business model canvas column type")
	}

	if len(bytes) == 0 {
		*b = BusinessModelCanvas{}
		return nil
	}

	return json.Unmarshal(bytes, b)
}

// GeneratedIdea represents a generated startup proposal
type GeneratedIdea struct {
	IdeaID               uuid.UUID           `json:"ideaId"`
	UserID               string              `json:"userId"`
	GenerationID         uuid.UUID           `json:"generationId"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	SkillsRequired       []string            `json:"skillsRequired"`
	MarketTrendAnalysis  string              `json:"marketTrendAnalysis"`
	MarketViabilityScore int                 `json:"marketViabilityScore"`
	BusinessModelCanvas  BusinessModelCanvas `json:"businessModelCanvas"`
	GoMarketStrategy     string              `json:"goMarketStrategy"`
	CreatedAt            time.Time           `json:"createdAt"`
	Votes                []CommunityVote     `json:"votes"`
	Comments             []Comment           `json:"comments"`
}

// Upvotes counts the up votes attached to the idea
func (i *GeneratedIdea) Upvotes() int {
	return i.countVotes(VoteUp)
}

// Downvotes counts the down votes attached to the idea
func (i *GeneratedIdea) Downvotes() int {
	return i.countVotes(VoteDown)
}

// Popularity is upvotes minus downvotes
func (i *GeneratedIdea) Popularity() int {
	return i.Upvotes() - i.Downvotes()
}

// VoteRatio is the share of up votes in percent, rounded; 0 when nobody voted
func (i *GeneratedIdea) VoteRatio() int {
	up, down := i.Upvotes(), i.Downvotes()
	if up+down == 0 {
		return 0
	}
	return int(math.Round(float64(up) / float64(up+down) * 100))
}

func (i *GeneratedIdea) countVotes(t VoteType) int {
	n := 0
	for _, v := range i.Votes {
		if v.VoteType == t {
			n++
		}
	}
	return n
}

// MarshalJSON adds the derived vote summary and viability tier
func (i GeneratedIdea) MarshalJSON() ([]byte, error) {
	type plain GeneratedIdea
	votes := i.Votes
	if votes == nil {
		votes = []CommunityVote{}
	}
	comments := i.Comments
	if comments == nil {
		comments = []Comment{}
	}
	p := plain(i)
	p.Votes = votes
	p.Comments = comments
	return json.Marshal(struct {
		plain
		Upvotes       int           `json:"upvotes"`
		Downvotes     int           `json:"downvotes"`
		Popularity    int           `json:"popularity"`
		VoteRatio     int           `json:"voteRatio"`
		ViabilityTier ViabilityTier `json:"viabilityTier"`
	}{
		plain:         p,
		Upvotes:       i.Upvotes(),
		Downvotes:     i.Downvotes(),
		Popularity:    i.Popularity(),
		VoteRatio:     i.VoteRatio(),
		ViabilityTier: TierFor(i.MarketViabilityScore),
	})
}

// ClampViabilityScore keeps a score inside [0,100]
func ClampViabilityScore(score int) int {
	if score < MinViabilityScore {
		return MinViabilityScore
	}
	if score > MaxViabilityScore {
		return MaxViabilityScore
	}
	return score
}

// SortOrder selects how community ideas are ranked
type SortOrder string

const (
	SortRecent    SortOrder = "recent"
	SortPopular   SortOrder = "popular"
	SortViability SortOrder = "viability"
)

// ParseSortOrder validates a sort order string; empty means popular
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case "":
		return SortPopular, true
	case SortRecent, SortPopular, SortViability:
		return SortOrder(s), true
	default:
		return "", false
	}
}
