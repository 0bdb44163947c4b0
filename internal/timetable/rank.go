package timetable

import (
	"fmt"
	"math"
	"sort"

	"github.com/classkit/scheduler-api/internal/models"
)

type rankedClass struct {
	interval
	classType string
}

// RankQuality scores a kept variant for presentation; higher is better.
// It rewards course coverage above all, then gap quality, day balance,
// compactness, and theory/lab mixing, and penalizes early-morning
// starts.
func RankQuality(variant models.ScheduleVariant, policy Policy) (models.RankedVariant, error) {
	courseCount := len(variant.CourseTitles())

	byDay := make(map[string][]rankedClass)
	totalClassMinutes := 0
	for _, section := range variant.Sections {
		for _, slot := range section.Slots {
			iv, err := slotInterval(slot)
			if err != nil {
				return models.RankedVariant{}, err
			}
			byDay[slot.Day] = append(byDay[slot.Day], rankedClass{interval: iv, classType: slot.ClassType()})
			totalClassMinutes += iv.end - iv.start
		}
	}

	totalGap := 0
	gapCount := 0
	daysWithClasses := 0
	earlyClasses := 0
	totalSpanMinutes := 0
	mixPatternScore := 0.0

	for _, classes := range byDay {
		if len(classes) == 0 {
			continue
		}
		daysWithClasses++
		sort.Slice(classes, func(i, j int) bool { return classes[i].start < classes[j].start })

		for _, class := range classes {
			if class.start < policy.EarlyMorningCutoff {
				earlyClasses++
			}
		}

		totalSpanMinutes += classes[len(classes)-1].end - classes[0].start

		for i := 0; i+1 < len(classes); i++ {
			gap := classes[i+1].start - classes[i].end
			if gap > 0 {
				totalGap += gap
				gapCount++
			}
		}

		mixPatternScore += dayMixBonus(classes, policy)
	}

	avgGap := 0.0
	if gapCount > 0 {
		avgGap = float64(totalGap) / float64(gapCount)
	}

	compactness := 100.0
	if totalSpanMinutes > 0 {
		compactness = float64(totalClassMinutes) / float64(totalSpanMinutes) * 100
	}

	normalizedMix := 0.0
	if daysWithClasses > 0 {
		normalizedMix = mixPatternScore / float64(daysWithClasses)
	}

	// Transition time too short is a smaller penalty than dead time too long.
	gapScore := policy.GapScoreBase
	if avgGap < policy.TightGapThreshold {
		gapScore -= (policy.TightGapThreshold - avgGap) * policy.TightGapPenalty
	} else if avgGap > policy.WideGapThreshold {
		gapScore -= (avgGap - policy.WideGapThreshold) * policy.WideGapPenalty
	}

	activeDays := float64(daysWithClasses)
	if activeDays == 0 {
		activeDays = 1
	}
	coursesPerDay := float64(courseCount) / activeDays
	balancedDays := float64(daysWithClasses)*policy.DaySpreadWeight -
		math.Abs(coursesPerDay-policy.IdealCoursesPerDay)*policy.DayImbalancePenalty

	score := float64(courseCount)*policy.CourseWeight +
		gapScore +
		balancedDays +
		compactness*policy.CompactnessWeight +
		normalizedMix*policy.MixWeight -
		float64(earlyClasses)*policy.EarlyClassPenalty

	return models.RankedVariant{
		Variant: variant,
		Score:   score,
		Metrics: models.VariantMetrics{
			CourseCount:  courseCount,
			GapScore:     gapScore,
			BalancedDays: balancedDays,
			EarlyClasses: earlyClasses,
			Compactness:  compactness,
			MixPattern:   normalizedMix,
		},
	}, nil
}

// dayMixBonus rewards days where theory and lab appear together, with a
// larger bonus when the types strictly alternate.
func dayMixBonus(classes []rankedClass, policy Policy) float64 {
	if len(classes) < 2 {
		return 0
	}
	hasTheory := false
	hasLab := false
	for _, class := range classes {
		switch class.classType {
		case models.ClassTypeTheory:
			hasTheory = true
		case models.ClassTypeLab:
			hasLab = true
		}
	}
	if !hasTheory || !hasLab {
		return 0
	}
	for i := 1; i < len(classes); i++ {
		if classes[i].classType == classes[i-1].classType {
			return policy.MixedDayBonus
		}
	}
	return policy.AlternatingDayBonus
}

// RankAll re-scores each kept variant and returns them ordered best
// first, along with the recommended (top) index. The index is -1 when
// no variants exist.
func RankAll(variants []models.ScheduleVariant, policy Policy) ([]models.RankedVariant, int, error) {
	ranked := make([]models.RankedVariant, 0, len(variants))
	for _, variant := range variants {
		rv, err := RankQuality(variant, policy)
		if err != nil {
			return nil, -1, err
		}
		ranked = append(ranked, rv)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) == 0 {
		return ranked, -1, nil
	}
	return ranked, 0, nil
}

// Explanation thresholds are presentation policy layered on the ranking
// metrics, not a separate algorithm.
const (
	explainGapMinimal       = 85
	explainGapReasonable    = 70
	explainMixExcellent     = 15
	explainMixGood          = 8
	explainCompactVery      = 80
	explainCompactGood      = 60
	explainBalanceWell      = 50
	explainSeatComfortable  = 0.9
	explainSeatNearCapacity = 0.95
)

// Explain renders the recommendation justification as fixed
// human-readable bullets derived from the variant's metrics.
func Explain(ranked models.RankedVariant, requestedCourses int, policy Policy) []string {
	var bullets []string
	metrics := ranked.Metrics

	if requestedCourses > 0 {
		percent := int(math.Round(float64(metrics.CourseCount) / float64(requestedCourses) * 100))
		bullets = append(bullets, fmt.Sprintf("Includes %d courses (%d%% of your selection)", metrics.CourseCount, percent))
	}

	available := 0
	nearlyFull := 0
	withData := 0
	for _, section := range ranked.Variant.Sections {
		ratio, ok := section.FillRatio()
		if !ok {
			continue
		}
		withData++
		if ratio < explainSeatComfortable {
			available++
		}
		if ratio >= explainSeatNearCapacity {
			nearlyFull++
		}
	}
	if withData > 0 {
		if available > 0 {
			bullets = append(bullets, fmt.Sprintf("Includes %d sections with good seat availability", available))
		}
		if nearlyFull > 0 {
			bullets = append(bullets, fmt.Sprintf("Warning: includes %d nearly full sections with limited seats", nearlyFull))
		}
	}

	switch {
	case metrics.GapScore > explainGapMinimal:
		bullets = append(bullets, "Minimal gaps between classes")
	case metrics.GapScore > explainGapReasonable:
		bullets = append(bullets, "Reasonable gaps between classes")
	default:
		bullets = append(bullets, "Warning: some classes have longer gaps")
	}

	switch {
	case metrics.MixPattern > explainMixExcellent:
		bullets = append(bullets, "Excellent mix of theory and lab classes throughout the week")
	case metrics.MixPattern > explainMixGood:
		bullets = append(bullets, "Good balance of different class types")
	case metrics.MixPattern > 0:
		bullets = append(bullets, "Some variety in class types, but could be better")
	default:
		bullets = append(bullets, "Warning: theory and lab classes are not mixed optimally")
	}

	switch {
	case metrics.Compactness > explainCompactVery:
		bullets = append(bullets, "Very efficient schedule with minimal waiting time")
	case metrics.Compactness > explainCompactGood:
		bullets = append(bullets, "Good balance of class time vs. waiting time")
	default:
		bullets = append(bullets, "Warning: schedule has some waiting periods between classes")
	}

	if metrics.BalancedDays > explainBalanceWell {
		bullets = append(bullets, "Well-balanced classes across days")
	} else {
		bullets = append(bullets, "Warning: classes are concentrated on fewer days")
	}

	if metrics.EarlyClasses == 0 {
		bullets = append(bullets, "No early morning classes")
	} else {
		bullets = append(bullets, fmt.Sprintf("Warning: has %d early morning classes", metrics.EarlyClasses))
	}

	return bullets
}
