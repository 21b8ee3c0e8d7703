package service

import (
	"fmt"
	"strings"
	"testing"

	"ideaforge-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	profile := models.UserProfile{
		Skills:       []string{"Backend Development", "DevOps"},
		Interests:    []string{"FinTech", "SaaS"},
		CapitalRange: "$5K - $10K",
	}

	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, BuildPrompt(profile, nil), BuildPrompt(profile, nil))
	})

	t.Run("interpolates the profile", func(t *testing.T) {
		p := BuildPrompt(profile, nil)

		assert.True(t, strings.HasPrefix(p, "Generate 3 unique startup ideas based on the following user profile:\n\n"))
		assert.Contains(t, p, "Skills: Backend Development, DevOps\n")
		assert.Contains(t, p, "Interests: FinTech, SaaS\n")
		assert.Contains(t, p, "Capital Range: $5K - $10K\n")
	})

	t.Run("describes the output schema", func(t *testing.T) {
		p := BuildPrompt(profile, nil)

		for _, field := range []string{
			`"ideas"`, `"title"`, `"description"`, `"skillsRequired"`, `"marketTrendAnalysis"`,
			`"marketViabilityScore"`, `"businessModelCanvas"`, `"goMarketStrategy"`,
			`"valueProposition"`, `"costStructure"`,
		} {
			assert.Contains(t, p, field)
		}
		for _, internal := range []string{"ideaId", "userId", "generationId", "createdAt", "votes", "comments"} {
			assert.NotContains(t, p, internal)
		}
	})

	t.Run("lists previous ideas once and caps them", func(t *testing.T) {
		var previous []string
		for i := 0; i < 30; i++ {
			previous = append(previous, fmt.Sprintf("Idea %02d", i))
		}
		previous = append(previous, "Idea 00")

		p := BuildPrompt(profile, previous)

		assert.Contains(t, p, "Do not repeat or closely imitate these previously generated ideas:")
		assert.Equal(t, 1, strings.Count(p, "- Idea 00\n"))
		assert.Contains(t, p, "- Idea 19\n")
		assert.NotContains(t, p, "- Idea 20\n")
	})

	t.Run("omits the avoid list when empty", func(t *testing.T) {
		assert.NotContains(t, BuildPrompt(profile, []string{" "}), "previously generated")
	})
}
