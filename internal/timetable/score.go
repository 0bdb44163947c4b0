package timetable

import (
	"math"
	"sort"
	"strings"

	"github.com/classkit/scheduler-api/internal/models"
)

type interval struct {
	start int
	end   int
}

func slotInterval(slot models.TimeSlot) (interval, error) {
	start, err := ToMinutes(slot.TimeStart)
	if err != nil {
		return interval{}, err
	}
	end, err := ToMinutes(slot.TimeEnd)
	if err != nil {
		return interval{}, err
	}
	return interval{start: start, end: end}, nil
}

func intervalsByDay(sections []models.Section) (map[string][]interval, error) {
	byDay := make(map[string][]interval)
	for _, section := range sections {
		for _, slot := range section.Slots {
			iv, err := slotInterval(slot)
			if err != nil {
				return nil, err
			}
			byDay[slot.Day] = append(byDay[slot.Day], iv)
		}
	}
	for _, intervals := range byDay {
		sort.Slice(intervals, func(i, j int) bool { return intervals[i].start < intervals[j].start })
	}
	return byDay, nil
}

// SelectionScore is the coarse heuristic used only to rank variants for
// diversity selection; lower is better. The per-course weight dwarfs
// the gap penalty so broader coverage wins regardless of gap quality,
// with gaps breaking ties among same-coverage variants.
func SelectionScore(variant models.ScheduleVariant, policy Policy) (float64, error) {
	byDay, err := intervalsByDay(variant.Sections)
	if err != nil {
		return 0, err
	}

	totalGap := 0
	gapCount := 0
	for _, intervals := range byDay {
		for i := 0; i+1 < len(intervals); i++ {
			gap := intervals[i+1].start - intervals[i].end
			if gap > 0 {
				totalGap += gap
				gapCount++
			}
		}
	}

	avgGap := 0.0
	if gapCount > 0 {
		avgGap = float64(totalGap) / float64(gapCount)
	}
	gapPenalty := math.Pow(avgGap, policy.GapPenaltyExponent) * float64(gapCount)
	coverage := float64(len(variant.CourseTitles()))
	return gapPenalty - coverage*policy.CoverageWeight, nil
}

// SelectDiverse reduces the discovered variants to a bounded,
// non-redundant set. The best-scoring variant is always kept; the rest
// are kept in score order only when their set of included course titles
// is new, then backfilled by score to the cap when fewer unique
// coverages exist.
func SelectDiverse(variants []models.ScheduleVariant, policy Policy) ([]models.ScheduleVariant, error) {
	if len(variants) == 0 {
		return nil, nil
	}

	type scored struct {
		variant  models.ScheduleVariant
		score    float64
		coverage string
	}
	ranked := make([]scored, 0, len(variants))
	for _, variant := range variants {
		score, err := SelectionScore(variant, policy)
		if err != nil {
			return nil, err
		}
		titles := variant.CourseTitles()
		sort.Strings(titles)
		ranked = append(ranked, scored{
			variant:  variant,
			score:    score,
			coverage: strings.Join(titles, ","),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })

	kept := make([]models.ScheduleVariant, 0, policy.MaxKeptVariants)
	taken := make([]bool, len(ranked))
	coverages := make(map[string]struct{})

	kept = append(kept, ranked[0].variant)
	taken[0] = true
	coverages[ranked[0].coverage] = struct{}{}

	for i := 1; i < len(ranked) && len(kept) < policy.MaxKeptVariants; i++ {
		if _, dup := coverages[ranked[i].coverage]; dup {
			continue
		}
		kept = append(kept, ranked[i].variant)
		taken[i] = true
		coverages[ranked[i].coverage] = struct{}{}
	}

	for i := 0; i < len(ranked) && len(kept) < policy.MaxKeptVariants; i++ {
		if taken[i] {
			continue
		}
		kept = append(kept, ranked[i].variant)
		taken[i] = true
	}
	return kept, nil
}
