package timetable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classkit/scheduler-api/internal/models"
)

func buildAll(t *testing.T, candidates models.CourseCandidateSet, policy Policy) []models.ScheduleVariant {
	t.Helper()
	cache, err := BuildConflictCache(candidates)
	require.NoError(t, err)
	variants, err := BuildVariants(context.Background(), candidates, cache, policy)
	require.NoError(t, err)
	return variants
}

func TestBuildVariantsNeverDuplicatesCourses(t *testing.T) {
	candidates := models.CourseCandidateSet{
		"Algorithms": {
			section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)),
			section("ALG-2", "Algorithms", slot("Tuesday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)),
		},
		"Physics": {
			section("PHY-1", "Physics", slot("Wednesday", "9:00 AM", "10:00 AM", models.ClassTypeLab)),
		},
	}

	for _, variant := range buildAll(t, candidates, DefaultPolicy()) {
		seen := make(map[string]int)
		for _, chosen := range variant.Sections {
			seen[chosen.CourseTitle]++
		}
		for title, count := range seen {
			assert.Equal(t, 1, count, "course %s appears more than once", title)
		}
	}
}

func TestBuildVariantsFingerprintDedup(t *testing.T) {
	// Two courses, two conflict-free sections each: every composition
	// must surface exactly once.
	candidates := models.CourseCandidateSet{
		"Algorithms": {
			section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)),
			section("ALG-2", "Algorithms", slot("Tuesday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)),
		},
		"Physics": {
			section("PHY-1", "Physics", slot("Wednesday", "9:00 AM", "10:00 AM", models.ClassTypeLab)),
			section("PHY-2", "Physics", slot("Thursday", "9:00 AM", "10:00 AM", models.ClassTypeLab)),
		},
	}

	variants := buildAll(t, candidates, DefaultPolicy())
	fingerprints := make(map[string]struct{}, len(variants))
	for _, variant := range variants {
		fp := Fingerprint(variant.Sections)
		_, dup := fingerprints[fp]
		assert.False(t, dup, "duplicate composition %s", fp)
		fingerprints[fp] = struct{}{}
	}
}

func TestBuildVariantsRespectsCap(t *testing.T) {
	// Five courses with three non-conflicting sections each explode
	// combinatorially; the cap must bound the emission.
	candidates := models.CourseCandidateSet{}
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}
	starts := []string{"8:00 AM", "10:00 AM", "1:00 PM"}
	ends := []string{"9:30 AM", "11:30 AM", "2:30 PM"}
	titles := []string{"Algorithms", "Physics", "Chemistry", "Ethics", "Statistics"}
	for i, title := range titles {
		for j := range starts {
			id := title[:3] + "-" + starts[j]
			candidates[title] = append(candidates[title],
				section(id, title, slot(days[i], starts[j], ends[j], models.ClassTypeTheory)))
		}
	}

	policy := DefaultPolicy()
	variants := buildAll(t, candidates, policy)
	assert.Len(t, variants, policy.MaxVariants)
}

func TestBuildVariantsDropsCoursesWhenInfeasible(t *testing.T) {
	// Spec example: A1 overlaps B1, and A2 overlaps B1 as well, so no
	// two-course variant exists; only single-course schedules surface.
	candidates := models.CourseCandidateSet{
		"A": {
			section("A1", "A", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)),
			section("A2", "A", slot("Monday", "10:00 AM", "11:00 AM", models.ClassTypeTheory)),
		},
		"B": {
			section("B1", "B", slot("Monday", "9:30 AM", "10:30 AM", models.ClassTypeLab)),
		},
	}

	variants := buildAll(t, candidates, DefaultPolicy())
	require.NotEmpty(t, variants)

	compositions := make(map[string]struct{})
	for _, variant := range variants {
		assert.Len(t, variant.CourseTitles(), 1, "no conflict-free two-course variant exists")
		compositions[Fingerprint(variant.Sections)] = struct{}{}
	}
	assert.Contains(t, compositions, "A:A1")
	assert.Contains(t, compositions, "A:A2")
	assert.Contains(t, compositions, "B:B1")
}

func TestBuildVariantsTriesLessFullSectionsFirst(t *testing.T) {
	full := 28
	capacity := 30
	light := 5
	candidates := models.CourseCandidateSet{
		"Algorithms": {
			{
				SectionID: "ALG-FULL", CourseTitle: "Algorithms",
				EnrolledCount: &full, Capacity: &capacity,
				Slots: []models.TimeSlot{slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)},
			},
			{
				SectionID: "ALG-LIGHT", CourseTitle: "Algorithms",
				EnrolledCount: &light, Capacity: &capacity,
				Slots: []models.TimeSlot{slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)},
			},
		},
	}

	variants := buildAll(t, candidates, DefaultPolicy())
	require.NotEmpty(t, variants)
	assert.Equal(t, "ALG-LIGHT", variants[0].Sections[0].SectionID,
		"lower fill ratio attempted first")
}

func TestBuildVariantsDeterministic(t *testing.T) {
	candidates := models.CourseCandidateSet{
		"Algorithms": {
			section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)),
			section("ALG-2", "Algorithms", slot("Tuesday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)),
		},
		"Physics": {
			section("PHY-1", "Physics", slot("Monday", "10:00 AM", "11:30 AM", models.ClassTypeLab)),
			section("PHY-2", "Physics", slot("Wednesday", "9:00 AM", "10:30 AM", models.ClassTypeLab)),
		},
		"Ethics": {
			section("ETH-1", "Ethics", slot("Thursday", "2:00 PM", "3:00 PM", models.ClassTypeTheory)),
		},
	}

	first := buildAll(t, candidates, DefaultPolicy())
	for i := 0; i < 5; i++ {
		again := buildAll(t, candidates, DefaultPolicy())
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, Fingerprint(first[j].Sections), Fingerprint(again[j].Sections))
		}
	}
}

func TestBuildVariantsContextCancellation(t *testing.T) {
	candidates := models.CourseCandidateSet{
		"Algorithms": {section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory))},
	}
	cache, err := BuildConflictCache(candidates)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = BuildVariants(ctx, candidates, cache, DefaultPolicy())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGreedyFallbackCoversWhatItCan(t *testing.T) {
	// Cap of zero disables the backtracking emission entirely, forcing
	// the greedy path.
	policy := DefaultPolicy()
	policy.MaxVariants = 0

	candidates := models.CourseCandidateSet{
		"Algorithms": {section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory))},
		"Physics":    {section("PHY-1", "Physics", slot("Monday", "9:30 AM", "10:30 AM", models.ClassTypeLab))},
		"Ethics":     {section("ETH-1", "Ethics", slot("Thursday", "2:00 PM", "3:00 PM", models.ClassTypeTheory))},
	}

	variants := buildAll(t, candidates, policy)
	require.Len(t, variants, 1)
	titles := variants[0].CourseTitles()
	assert.Contains(t, titles, "Ethics", "least-conflicted course placed first")
	assert.Len(t, titles, 2, "one of the two overlapping courses is dropped")
}

func TestCandidateSetFingerprintCoversSlotTimes(t *testing.T) {
	morning := models.CourseCandidateSet{
		"Algorithms": {section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory))},
		"Physics":    {section("PHY-1", "Physics", slot("Monday", "9:30 AM", "10:30 AM", models.ClassTypeLab))},
	}
	afternoon := models.CourseCandidateSet{
		"Algorithms": {section("ALG-1", "Algorithms", slot("Monday", "2:00 PM", "3:00 PM", models.ClassTypeTheory))},
		"Physics":    {section("PHY-1", "Physics", slot("Monday", "9:30 AM", "10:30 AM", models.ClassTypeLab))},
	}

	assert.NotEqual(t, CandidateSetFingerprint(morning), CandidateSetFingerprint(afternoon),
		"same titles and section IDs with different slot times must key differently")
}

func TestCandidateSetFingerprintCoversEnrollment(t *testing.T) {
	sparse := section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory))
	enrolled, capacity := 10, 40
	sparse.EnrolledCount, sparse.Capacity = &enrolled, &capacity

	full := section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory))
	nearCap := 39
	full.EnrolledCount, full.Capacity = &nearCap, &capacity

	a := models.CourseCandidateSet{"Algorithms": {sparse}}
	b := models.CourseCandidateSet{"Algorithms": {full}}
	assert.NotEqual(t, CandidateSetFingerprint(a), CandidateSetFingerprint(b))
}

func TestCandidateSetFingerprintOrderIndependent(t *testing.T) {
	first := section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory))
	second := section("ALG-2", "Algorithms", slot("Tuesday", "9:00 AM", "10:00 AM", models.ClassTypeTheory))

	a := models.CourseCandidateSet{"Algorithms": {first, second}}
	b := models.CourseCandidateSet{"Algorithms": {second, first}}
	assert.Equal(t, CandidateSetFingerprint(a), CandidateSetFingerprint(b),
		"section listing order must not change the key")
}
