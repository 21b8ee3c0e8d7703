package service

import (
	"time"

	"ideaforge-backend/models"

	"github.com/google/uuid"
)

const (
	FallbackIdeaTitle = "AI-Powered Code Review Assistant"

	MessageGenerated = "Ideas generated successfully"
	MessageFallback  = "Generated fallback ideas (API unavailable)"
)

// FallbackIdeas returns the fixed idea set served when generation fails.
// Each call returns fresh identifiers.
func FallbackIdeas(userID string, now time.Time) []models.GeneratedIdea {
	return []models.GeneratedIdea{
		{
			IdeaID:      uuid.New(),
			UserID:      userID,
			Title:       FallbackIdeaTitle,
			Description: "A developer tool that uses AI to automatically review code, suggest improvements, and catch potential bugs before they reach production. Integrates with popular IDEs and version control systems.",
			SkillsRequired: []string{
				"JavaScript",
				"React",
				"Node.js",
			},
			MarketTrendAnalysis:  "The developer tools market is growing rapidly with increasing demand for AI-powered solutions. Code quality and security are top priorities for development teams.",
			MarketViabilityScore: 82,
			BusinessModelCanvas: models.BusinessModelCanvas{
				ValueProposition: "Automated code review that improves code quality and reduces bugs",
				CustomerSegments: []string{"Software development teams", "Individual developers", "Tech companies"},
				Channels:         []string{"Developer communities", "IDE marketplaces", "Direct sales"},
				RevenueStreams:   []string{"Subscription fees", "Enterprise licenses", "API usage"},
				KeyResources:     []string{"AI models", "Development team", "Integration partnerships"},
				KeyActivities:    []string{"AI model training", "Product development", "Customer support"},
				KeyPartnerships:  []string{"IDE providers", "Version control platforms", "Cloud providers"},
				CostStructure:    []string{"AI infrastructure", "Development costs", "Sales and marketing"},
			},
			GoMarketStrategy: "Start with open-source version to build community, then offer premium features for teams and enterprises.",
			CreatedAt:        now,
			Votes:            []models.CommunityVote{},
			Comments:         []models.Comment{},
		},
	}
}
