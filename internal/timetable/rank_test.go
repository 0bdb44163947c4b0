package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classkit/scheduler-api/internal/models"
)

func TestRankQualityCoverageDominates(t *testing.T) {
	policy := DefaultPolicy()

	three := models.ScheduleVariant{Sections: []models.Section{
		section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:30 AM", models.ClassTypeTheory)),
		section("PHY-1", "Physics", slot("Tuesday", "9:00 AM", "10:30 AM", models.ClassTypeLab)),
		section("ETH-1", "Ethics", slot("Wednesday", "9:00 AM", "10:30 AM", models.ClassTypeTheory)),
	}}
	two := models.ScheduleVariant{Sections: []models.Section{
		section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:30 AM", models.ClassTypeTheory)),
		section("PHY-1", "Physics", slot("Tuesday", "9:00 AM", "10:30 AM", models.ClassTypeLab)),
	}}

	rankedThree, err := RankQuality(three, policy)
	require.NoError(t, err)
	rankedTwo, err := RankQuality(two, policy)
	require.NoError(t, err)

	assert.Greater(t, rankedThree.Score, rankedTwo.Score, "higher is better")
	assert.Equal(t, 3, rankedThree.Metrics.CourseCount)
}

func TestRankQualityEarlyMorningPenalty(t *testing.T) {
	policy := DefaultPolicy()

	early := models.ScheduleVariant{Sections: []models.Section{
		section("ALG-1", "Algorithms", slot("Monday", "8:00 AM", "9:30 AM", models.ClassTypeTheory)),
	}}
	late := models.ScheduleVariant{Sections: []models.Section{
		section("ALG-2", "Algorithms", slot("Monday", "10:00 AM", "11:30 AM", models.ClassTypeTheory)),
	}}

	rankedEarly, err := RankQuality(early, policy)
	require.NoError(t, err)
	rankedLate, err := RankQuality(late, policy)
	require.NoError(t, err)

	assert.Equal(t, 1, rankedEarly.Metrics.EarlyClasses)
	assert.Zero(t, rankedLate.Metrics.EarlyClasses)
	assert.Greater(t, rankedLate.Score, rankedEarly.Score)
}

func TestRankQualityMixPattern(t *testing.T) {
	policy := DefaultPolicy()

	alternating := models.ScheduleVariant{Sections: []models.Section{
		section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)),
		section("PHY-1", "Physics", slot("Monday", "10:00 AM", "11:00 AM", models.ClassTypeLab)),
		section("ETH-1", "Ethics", slot("Monday", "11:00 AM", "12:00 PM", models.ClassTypeTheory)),
	}}
	uniform := models.ScheduleVariant{Sections: []models.Section{
		section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)),
		section("PHY-2", "Physics", slot("Monday", "10:00 AM", "11:00 AM", models.ClassTypeTheory)),
		section("ETH-2", "Ethics", slot("Monday", "11:00 AM", "12:00 PM", models.ClassTypeTheory)),
	}}

	rankedAlt, err := RankQuality(alternating, policy)
	require.NoError(t, err)
	rankedUni, err := RankQuality(uniform, policy)
	require.NoError(t, err)

	assert.Equal(t, policy.AlternatingDayBonus, rankedAlt.Metrics.MixPattern,
		"single active day with strict alternation")
	assert.Zero(t, rankedUni.Metrics.MixPattern)
}

func TestRankQualityCompactness(t *testing.T) {
	// Back-to-back classes: span equals class time, compactness 100.
	variant := models.ScheduleVariant{Sections: []models.Section{
		section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:00 AM", models.ClassTypeTheory)),
		section("PHY-1", "Physics", slot("Monday", "10:00 AM", "11:00 AM", models.ClassTypeLab)),
	}}

	ranked, err := RankQuality(variant, DefaultPolicy())
	require.NoError(t, err)
	assert.InDelta(t, 100.0, ranked.Metrics.Compactness, 0.001)
}

func TestRankAllOrdersAndRecommends(t *testing.T) {
	variants := []models.ScheduleVariant{
		{Sections: []models.Section{
			section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:30 AM", models.ClassTypeTheory)),
		}},
		{Sections: []models.Section{
			section("ALG-1", "Algorithms", slot("Monday", "9:00 AM", "10:30 AM", models.ClassTypeTheory)),
			section("PHY-1", "Physics", slot("Tuesday", "9:00 AM", "10:30 AM", models.ClassTypeLab)),
		}},
	}

	ranked, recommended, err := RankAll(variants, DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, 0, recommended)
	assert.Equal(t, 2, ranked[0].Metrics.CourseCount, "two-course variant ranks first")
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
}

func TestRankAllEmpty(t *testing.T) {
	ranked, recommended, err := RankAll(nil, DefaultPolicy())
	require.NoError(t, err)
	assert.Empty(t, ranked)
	assert.Equal(t, -1, recommended)
}

func TestExplainBullets(t *testing.T) {
	policy := DefaultPolicy()
	enrolled := 10
	capacity := 40

	variant := models.ScheduleVariant{Sections: []models.Section{
		{
			SectionID: "ALG-1", CourseTitle: "Algorithms",
			EnrolledCount: &enrolled, Capacity: &capacity,
			Slots: []models.TimeSlot{
				slot("Monday", "9:00 AM", "10:30 AM", models.ClassTypeTheory),
				slot("Monday", "10:45 AM", "12:00 PM", models.ClassTypeLab),
			},
		},
	}}
	ranked, err := RankQuality(variant, policy)
	require.NoError(t, err)

	bullets := Explain(ranked, 2, policy)
	assert.Contains(t, bullets, "Includes 1 courses (50% of your selection)")
	assert.Contains(t, bullets, "Includes 1 sections with good seat availability")
	assert.Contains(t, bullets, "Minimal gaps between classes")
	assert.Contains(t, bullets, "No early morning classes")
}
