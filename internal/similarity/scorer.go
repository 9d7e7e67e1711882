// Package similarity ranks catalog exercises against a reference exercise by
// overlap of canonical muscle-group ids.
package similarity

import (
	"sort"

	"example.com/referencedata/internal/catalog"
	"example.com/referencedata/internal/domain"
)

const primaryMuscleScore = 3

type scored struct {
	exercise domain.Exercise
	score    int
	order    int
}

// Rank returns up to count candidates ordered by descending score, ties
// broken by candidate order. Score is 3 for a shared primary muscle plus 1
// per secondary muscle present in both muscle sets (set intersection).
// Zero-score candidates are excluded.
func Rank(base domain.Exercise, candidates []domain.Exercise, count int, muscles *catalog.Resolver) []domain.Exercise {
	ranked := make([]scored, 0, len(candidates))
	for i, candidate := range candidates {
		if candidate.ID == base.ID {
			continue
		}
		score := Score(base, candidate, muscles)
		if score == 0 {
			continue
		}
		ranked = append(ranked, scored{exercise: candidate, score: score, order: i})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].order < ranked[j].order
	})

	if count > 0 && len(ranked) > count {
		ranked = ranked[:count]
	}
	out := make([]domain.Exercise, 0, len(ranked))
	for _, item := range ranked {
		out = append(out, item.exercise)
	}
	return out
}

// Score computes the muscle-overlap score for one candidate. All raw muscle
// references on both sides go through the canonical resolver first, so
// legacy spellings still overlap.
func Score(base, candidate domain.Exercise, muscles *catalog.Resolver) int {
	basePrimary := muscles.Resolve(base.PrimaryMuscle)
	candidatePrimary := muscles.Resolve(candidate.PrimaryMuscle)

	score := 0
	if basePrimary != "" && basePrimary == candidatePrimary {
		score += primaryMuscleScore
	}

	baseSecondary := secondarySet(base.Muscles, basePrimary, muscles)
	for id := range secondarySet(candidate.Muscles, candidatePrimary, muscles) {
		if _, ok := baseSecondary[id]; ok {
			score++
		}
	}
	return score
}

// secondarySet resolves the muscle list into a canonical set with the
// primary muscle removed.
func secondarySet(raw []string, primary string, muscles *catalog.Resolver) map[string]struct{} {
	out := make(map[string]struct{}, len(raw))
	for _, id := range muscles.ResolveAll(raw) {
		if id != primary {
			out[id] = struct{}{}
		}
	}
	return out
}
