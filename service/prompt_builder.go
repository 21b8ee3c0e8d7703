package service

import (
	"fmt"
	"strings"

	"ideaforge-backend/models"
)

const (
	// SystemInstruction is sent as the system message of every generation call
	SystemInstruction = "You are an expert startup advisor who generates personalized, actionable business ideas based on user profiles. Always respond with valid JSON."

	IdeasPerGeneration   = 3
	GenerationTemp       = 0.8
	GenerationMaxTokens  = 4000
	maxPreviousIdeaTitle = 20
)

const ideaSchemaExample = `{
  "ideas": [
    {
      "title": "Idea Title",
      "description": "Detailed description...",
      "skillsRequired": ["skill1", "skill2"],
      "marketTrendAnalysis": "Market analysis...",
      "marketViabilityScore": 85,
      "businessModelCanvas": {
        "valueProposition": "...",
        "customerSegments": ["segment1", "segment2"],
        "channels": ["channel1", "channel2"],
        "revenueStreams": ["stream1", "stream2"],
        "keyResources": ["resource1", "resource2"],
        "keyActivities": ["activity1", "activity2"],
        "keyPartnerships": ["partner1", "partner2"],
        "costStructure": ["cost1", "cost2"]
      },
      "goMarketStrategy": "Strategy details..."
    }
  ]
}`

// BuildPrompt renders the profile into the user message of a generation call.
// previousIdeas are titles the model is asked not to repeat; only the first
// few are listed.
func BuildPrompt(profile models.UserProfile, previousIdeas []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d unique startup ideas based on the following user profile:\n\n", IdeasPerGeneration)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(profile.Skills, ", "))
	fmt.Fprintf(&b, "Interests: %s\n", strings.Join(profile.Interests, ", "))
	fmt.Fprintf(&b, "Capital Range: %s\n\n", profile.CapitalRange)

	b.WriteString("For each idea, provide:\n")
	b.WriteString("1. A compelling title (max 60 characters)\n")
	b.WriteString("2. A detailed description (200-300 words)\n")
	b.WriteString("3. Required skills (from the user's skillset)\n")
	b.WriteString("4. Market trend analysis (100-150 words)\n")
	b.WriteString("5. Market viability score (0-100)\n")
	b.WriteString("6. Business model canvas with: valueProposition, customerSegments, channels, revenueStreams, keyResources, keyActivities, keyPartnerships, costStructure\n")
	b.WriteString("7. Go-to-market strategy (100-150 words)\n\n")

	b.WriteString("Focus on ideas that:\n")
	b.WriteString("- Leverage the user's specific skills\n")
	b.WriteString("- Align with their interests\n")
	b.WriteString("- Are feasible within their capital range\n")
	b.WriteString("- Address current market trends\n")
	b.WriteString("- Have clear monetization paths\n")

	titles := previousTitles(previousIdeas)
	if len(titles) > 0 {
		b.WriteString("\nDo not repeat or closely imitate these previously generated ideas:\n")
		for _, t := range titles {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	b.WriteString("\nReturn the response as a JSON object with an \"ideas\" array containing the ideas in this exact format:\n")
	b.WriteString(ideaSchemaExample)

	return b.String()
}

func previousTitles(previous []string) []string {
	titles := dedupe(previous)
	if len(titles) > maxPreviousIdeaTitle {
		titles = titles[:maxPreviousIdeaTitle]
	}
	return titles
}
