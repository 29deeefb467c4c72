package scoring

import (
	"slices"

	"movie-discovery-llm-recommender/internal/models"
)

// Diversify returns up to target candidates, best first. The first pass
// admits at most one candidate per primary genre; the second fills what is
// left in score order ignoring genre. The input slice is not modified.
func Diversify(candidates []models.ScoredCandidate, target int) []models.ScoredCandidate {
	if target <= 0 || len(candidates) == 0 {
		return nil
	}

	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b models.ScoredCandidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	selected := make([]models.ScoredCandidate, 0, min(target, len(sorted)))
	admitted := make([]bool, len(sorted))
	genres := make(map[int]struct{})

	for i, c := range sorted {
		if len(selected) == target {
			break
		}
		if g, ok := c.Item.PrimaryGenre(); ok {
			if _, taken := genres[g]; taken {
				continue
			}
			genres[g] = struct{}{}
		}
		selected = append(selected, c)
		admitted[i] = true
	}

	for i, c := range sorted {
		if len(selected) == target {
			break
		}
		if !admitted[i] {
			selected = append(selected, c)
		}
	}
	return selected
}
