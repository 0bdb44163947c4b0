package timetable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classkit/scheduler-api/internal/models"
)

func TestGenerateEmptyCandidateSet(t *testing.T) {
	result, err := Generate(context.Background(), nil, DefaultPolicy())
	require.NoError(t, err)
	assert.Empty(t, result.Variants)
	assert.Equal(t, -1, result.Recommended)
	assert.Zero(t, result.Stats.Discovered)
}

func TestGenerateAllConflictingPairs(t *testing.T) {
	// Every section of A overlaps B's only section, so no two-course
	// variant exists; each single-course variant survives.
	candidates := models.CourseCandidateSet{
		"Course A": {
			section("A1", "Course A", slot("Monday", "9:00 AM", "11:00 AM", models.ClassTypeTheory)),
			section("A2", "Course A", slot("Monday", "10:00 AM", "12:00 PM", models.ClassTypeTheory)),
		},
		"Course B": {
			section("B1", "Course B", slot("Monday", "10:30 AM", "11:30 AM", models.ClassTypeLab)),
		},
	}

	result, err := Generate(context.Background(), candidates, DefaultPolicy())
	require.NoError(t, err)
	require.NotEmpty(t, result.Variants)
	assert.Equal(t, 0, result.Recommended)

	for _, ranked := range result.Variants {
		assert.Len(t, ranked.Variant.Sections, 1)
	}

	seen := make(map[string]bool)
	for _, ranked := range result.Variants {
		seen[Fingerprint(ranked.Variant.Sections)] = true
	}
	assert.True(t, seen["Course A:A1"])
	assert.True(t, seen["Course A:A2"])
	assert.True(t, seen["Course B:B1"])
}

func TestGenerateConflictFree(t *testing.T) {
	candidates := models.CourseCandidateSet{
		"Algorithms": {
			section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:30 AM", models.ClassTypeTheory)),
		},
		"Physics": {
			section("PHY-1", "Physics", slot("Tuesday", "9:00 AM", "10:30 AM", models.ClassTypeLab)),
		},
		"Ethics": {
			section("ETH-1", "Ethics", slot("Wednesday", "9:00 AM", "10:30 AM", models.ClassTypeTheory)),
		},
	}

	result, err := Generate(context.Background(), candidates, DefaultPolicy())
	require.NoError(t, err)
	require.NotEmpty(t, result.Variants)

	best := result.Variants[result.Recommended]
	assert.Equal(t, 3, best.Metrics.CourseCount, "the full-coverage variant is recommended")
	assert.False(t, result.Stats.CapReached)
	assert.Equal(t, result.Stats.Kept, len(result.Variants))
}

func TestGenerateDeterministic(t *testing.T) {
	candidates := models.CourseCandidateSet{
		"Algorithms": {
			section("ALG-1", "Algorithms", slot("Monday", "8:00 AM", "9:30 AM", models.ClassTypeTheory)),
			section("ALG-2", "Algorithms", slot("Tuesday", "8:00 AM", "9:30 AM", models.ClassTypeTheory)),
		},
		"Physics": {
			section("PHY-1", "Physics", slot("Monday", "10:00 AM", "11:30 AM", models.ClassTypeLab)),
			section("PHY-2", "Physics", slot("Wednesday", "10:00 AM", "11:30 AM", models.ClassTypeLab)),
		},
		"Ethics": {
			section("ETH-1", "Ethics", slot("Thursday", "9:00 AM", "10:30 AM", models.ClassTypeTheory)),
		},
	}

	first, err := Generate(context.Background(), candidates, DefaultPolicy())
	require.NoError(t, err)

	for run := 0; run < 5; run++ {
		next, err := Generate(context.Background(), candidates, DefaultPolicy())
		require.NoError(t, err)
		require.Len(t, next.Variants, len(first.Variants))
		for i := range first.Variants {
			assert.Equal(t,
				Fingerprint(first.Variants[i].Variant.Sections),
				Fingerprint(next.Variants[i].Variant.Sections))
			assert.Equal(t, first.Variants[i].Score, next.Variants[i].Score)
		}
		assert.Equal(t, first.Recommended, next.Recommended)
		assert.Equal(t, first.Stats, next.Stats)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates := models.CourseCandidateSet{
		"Algorithms": {
			section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:30 AM", models.ClassTypeTheory)),
		},
	}

	_, err := Generate(ctx, candidates, DefaultPolicy())
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateMalformedTime(t *testing.T) {
	candidates := models.CourseCandidateSet{
		"Algorithms": {
			section("ALG-1", "Algorithms", slot("Monday", "whenever", "10:30 AM", models.ClassTypeTheory)),
		},
	}

	_, err := Generate(context.Background(), candidates, DefaultPolicy())
	var malformed *MalformedTimeError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "whenever", malformed.Value)
}
