package service

import (
	"sort"

	"ideaforge-backend/models"
)

// RankIdeas returns a new slice ordered by sortBy. The input is not modified.
// Ties keep their input order.
func RankIdeas(ideas []models.GeneratedIdea, sortBy models.SortOrder) []models.GeneratedIdea {
	out := make([]models.GeneratedIdea, len(ideas))
	copy(out, ideas)

	switch sortBy {
	case models.SortRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case models.SortViability:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MarketViabilityScore > out[j].MarketViabilityScore
		})
	case models.SortPopular:
		// Popularity walks the vote list, so compute it once per idea.
		scores := make([]int, len(out))
		idx := make([]int, len(out))
		for i := range out {
			scores[i] = out[i].Popularity()
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return scores[idx[a]] > scores[idx[b]]
		})
		ranked := make([]models.GeneratedIdea, len(out))
		for i, k := range idx {
			ranked[i] = out[k]
		}
		out = ranked
	}

	return out
}
