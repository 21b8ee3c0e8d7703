package service

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"ideaforge-backend/models"

	"github.com/google/uuid"
)

type rawCanvas struct {
	ValueProposition *string   `json:"valueProposition"`
	CustomerSegments *[]string `json:"customerSegments"`
	Channels         *[]string `json:"channels"`
	RevenueStreams   *[]string `json:"revenueStreams"`
	KeyResources     *[]string `json:"keyResources"`
	KeyActivities    *[]string `json:"keyActivities"`
	KeyPartnerships  *[]string `json:"keyPartnerships"`
	CostStructure    *[]string `json:"costStructure"`
}

type rawIdea struct {
	Title                *string      `json:"title"`
	Description          *string      `json:"description"`
	SkillsRequired       *[]string    `json:"skillsRequired"`
	MarketTrendAnalysis  *string      `json:"marketTrendAnalysis"`
	MarketViabilityScore *json.Number `json:"marketViabilityScore"`
	BusinessModelCanvas  *rawCanvas   `json:"businessModelCanvas"`
	GoMarketStrategy     *string      `json:"goMarketStrategy"`
}

type rawPayload struct {
	Ideas *[]json.RawMessage `json:"ideas"`
}

// ParseIdeas turns a model completion into idea content. The whole payload is
// rejected with a *MalformedResponseError if any idea misses a required field.
// Identity, ownership and timestamps are left zero; see stampIdeas.
func ParseIdeas(completion string) ([]models.GeneratedIdea, error) {
	body := extractJSONObject(completion)
	if body == "" {
		return nil, malformed("no JSON object in completion")
	}

	var payload rawPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, malformed("invalid JSON: %v", err)
	}
	if payload.Ideas == nil {
		return nil, malformed("missing ideas array")
	}
	if len(*payload.Ideas) == 0 {
		return nil, malformed("ideas array is empty")
	}

	items := *payload.Ideas
	if len(items) > IdeasPerGeneration {
		items = items[:IdeasPerGeneration]
	}

	ideas := make([]models.GeneratedIdea, 0, len(items))
	for i, item := range items {
		var raw rawIdea
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, malformed("idea %d: %v", i, err)
		}
		idea, err := raw.toIdea()
		if err != nil {
			return nil, malformed("idea %d: %s", i, err.Error())
		}
		ideas = append(ideas, idea)
	}

	return ideas, nil
}

type fieldError string

func (e fieldError) Error() string { return string(e) }

func (r rawIdea) toIdea() (models.GeneratedIdea, error) {
	title, err := requiredString("title", r.Title)
	if err != nil {
		return models.GeneratedIdea{}, err
	}
	description, err := requiredString("description", r.Description)
	if err != nil {
		return models.GeneratedIdea{}, err
	}
	trend, err := requiredString("marketTrendAnalysis", r.MarketTrendAnalysis)
	if err != nil {
		return models.GeneratedIdea{}, err
	}
	strategy, err := requiredString("goMarketStrategy", r.GoMarketStrategy)
	if err != nil {
		return models.GeneratedIdea{}, err
	}

	if r.SkillsRequired == nil {
		return models.GeneratedIdea{}, fieldError("missing skillsRequired")
	}
	skills := *r.SkillsRequired
	if len(skills) == 0 {
		return models.GeneratedIdea{}, fieldError("skillsRequired is empty")
	}

	if r.MarketViabilityScore == nil {
		return models.GeneratedIdea{}, fieldError("missing marketViabilityScore")
	}
	score, err := r.MarketViabilityScore.Float64()
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return models.GeneratedIdea{}, fieldError("marketViabilityScore is not a number")
	}

	canvas, err := r.BusinessModelCanvas.toCanvas()
	if err != nil {
		return models.GeneratedIdea{}, err
	}

	return models.GeneratedIdea{
		Title:                title,
		Description:          description,
		SkillsRequired:       skills,
		MarketTrendAnalysis:  trend,
		MarketViabilityScore: clampScore(score),
		BusinessModelCanvas:  canvas,
		GoMarketStrategy:     strategy,
	}, nil
}

func (c *rawCanvas) toCanvas() (models.BusinessModelCanvas, error) {
	if c == nil {
		return models.BusinessModelCanvas{}, fieldError("missing businessModelCanvas")
	}
	vp, err := requiredString("businessModelCanvas.valueProposition", c.ValueProposition)
	if err != nil {
		return models.BusinessModelCanvas{}, err
	}

	lists := []struct {
		name string
		v    *[]string
	}{
		{"customerSegments", c.CustomerSegments},
		{"channels", c.Channels},
		{"revenueStreams", c.RevenueStreams},
		{"keyResources", c.KeyResources},
		{"keyActivities", c.KeyActivities},
		{"keyPartnerships", c.KeyPartnerships},
		{"costStructure", c.CostStructure},
	}
	for _, l := range lists {
		if l.v == nil {
			return models.BusinessModelCanvas{}, fieldError("missing businessModelCanvas." + l.name)
		}
	}

	return models.BusinessModelCanvas{
		ValueProposition: vp,
		CustomerSegments: *c.CustomerSegments,
		Channels:         *c.Channels,
		RevenueStreams:   *c.RevenueStreams,
		KeyResources:     *c.KeyResources,
		KeyActivities:    *c.KeyActivities,
		KeyPartnerships:  *c.KeyPartnerships,
		CostStructure:    *c.CostStructure,
	}, nil
}

// requiredString rejects missing or blank fields and returns the value as sent
func requiredString(name string, v *string) (string, error) {
	if v == nil {
		return "", fieldError("missing " + name)
	}
	if strings.TrimSpace(*v) == "" {
		return "", fieldError(name + " is empty")
	}
	return *v, nil
}

// clampScore bounds the score before converting, as int() of an
// out-of-range float is implementation-defined
func clampScore(score float64) int {
	score = math.Max(models.MinViabilityScore, math.Min(models.MaxViabilityScore, math.Round(score)))
	return int(score)
}

// extractJSONObject strips markdown fences and surrounding prose, returning
// the outermost {...} span or "" when there is none.
func extractJSONObject(completion string) string {
	s := strings.TrimSpace(completion)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// stampIdeas assigns identity, owner and creation time to parsed ideas
func stampIdeas(ideas []models.GeneratedIdea, userID string, generationID uuid.UUID, now time.Time) []models.GeneratedIdea {
	out := make([]models.GeneratedIdea, len(ideas))
	for i, idea := range ideas {
		idea.IdeaID = uuid.New()
		idea.UserID = userID
		idea.GenerationID = generationID
		idea.CreatedAt = now
		idea.Votes = []models.CommunityVote{}
		idea.Comments = []models.Comment{}
		out[i] = idea
	}
	return out
}
