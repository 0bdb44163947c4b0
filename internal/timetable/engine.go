package timetable

import (
	"context"

	"github.com/classkit/scheduler-api/internal/models"
)

// Result carries one full generation pass: the kept variants ordered
// best first, the recommended index (-1 when empty), and search stats.
type Result struct {
	Variants    []models.RankedVariant
	Recommended int
	Stats       Stats
}

// Stats summarises the search for callers; the variant cap silently
// truncates the enumeration, so Discovered vs Kept exposes the gap.
type Stats struct {
	Discovered int  `json:"discovered"`
	Kept       int  `json:"kept"`
	CapReached bool `json:"capReached"`
}

// Generate runs the whole pipeline synchronously over an in-memory
// candidate set: conflict matrix, bounded backtracking search,
// diversity selection, then quality ranking. Deterministic for a given
// input, pure over it, and therefore safe to memoize by composition.
// An empty candidate set yields an empty result, not an error.
func Generate(ctx context.Context, candidates models.CourseCandidateSet, policy Policy) (*Result, error) {
	if len(candidates) == 0 {
		return &Result{Recommended: -1}, nil
	}

	cache, err := BuildConflictCache(candidates)
	if err != nil {
		return nil, err
	}

	discovered, err := BuildVariants(ctx, candidates, cache, policy)
	if err != nil {
		return nil, err
	}

	kept, err := SelectDiverse(discovered, policy)
	if err != nil {
		return nil, err
	}

	ranked, recommended, err := RankAll(kept, policy)
	if err != nil {
		return nil, err
	}

	return &Result{
		Variants:    ranked,
		Recommended: recommended,
		Stats: Stats{
			Discovered: len(discovered),
			Kept:       len(kept),
			CapReached: len(discovered) >= policy.MaxVariants,
		},
	}, nil
}
