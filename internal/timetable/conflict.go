package timetable

import (
	"fmt"
	"sort"

	"github.com/classkit/scheduler-api/internal/models"
)

// Verdict is the outcome of a pairwise conflict check.
type Verdict struct {
	Conflicts bool
	Reason    string
}

// CheckConflict reports whether any slot of a overlaps any slot of b on
// the same day. Intervals are half-open: a class ending at 10:00 does
// not conflict with one starting at 10:00. Sections without slots never
// conflict. Malformed clock strings abort the check.
func CheckConflict(a, b []models.TimeSlot) (Verdict, error) {
	for _, slotA := range a {
		for _, slotB := range b {
			if slotA.Day != slotB.Day {
				continue
			}
			startA, err := ToMinutes(slotA.TimeStart)
			if err != nil {
				return Verdict{}, err
			}
			endA, err := ToMinutes(slotA.TimeEnd)
			if err != nil {
				return Verdict{}, err
			}
			startB, err := ToMinutes(slotB.TimeStart)
			if err != nil {
				return Verdict{}, err
			}
			endB, err := ToMinutes(slotB.TimeEnd)
			if err != nil {
				return Verdict{}, err
			}
			if startA < endB && endA > startB {
				return Verdict{
					Conflicts: true,
					Reason: fmt.Sprintf("time overlap on %s (%s-%s conflicts with %s-%s)",
						slotA.Day, slotA.TimeStart, slotA.TimeEnd, slotB.TimeStart, slotB.TimeEnd),
				}, nil
			}
		}
	}
	return Verdict{}, nil
}

// ConflictCache holds the precomputed symmetric conflict matrix across
// all candidate sections plus per-course conflict tallies. Sections of
// the same course are never compared; a student takes one per course.
type ConflictCache struct {
	matrix  map[string]map[string]bool
	tallies map[string]int
}

// BuildConflictCache computes the matrix once for a candidate set. The
// tally counts conflicting section pairs touching each course and
// drives the search order.
func BuildConflictCache(candidates models.CourseCandidateSet) (*ConflictCache, error) {
	cache := &ConflictCache{
		matrix:  make(map[string]map[string]bool),
		tallies: make(map[string]int, len(candidates)),
	}

	titles := sortedTitles(candidates)
	for _, title := range titles {
		cache.tallies[title] = 0
		for _, section := range candidates[title] {
			if cache.matrix[section.SectionID] == nil {
				cache.matrix[section.SectionID] = make(map[string]bool)
			}
		}
	}

	for i, titleA := range titles {
		for _, titleB := range titles[i+1:] {
			for _, sectionA := range candidates[titleA] {
				for _, sectionB := range candidates[titleB] {
					verdict, err := CheckConflict(sectionA.Slots, sectionB.Slots)
					if err != nil {
						return nil, err
					}
					cache.matrix[sectionA.SectionID][sectionB.SectionID] = verdict.Conflicts
					cache.matrix[sectionB.SectionID][sectionA.SectionID] = verdict.Conflicts
					if verdict.Conflicts {
						cache.tallies[titleA]++
						cache.tallies[titleB]++
					}
				}
			}
		}
	}
	return cache, nil
}

// Conflicts reports whether the two sections were recorded as conflicting.
func (c *ConflictCache) Conflicts(sectionA, sectionB string) bool {
	row, ok := c.matrix[sectionA]
	if !ok {
		return false
	}
	return row[sectionB]
}

// Tally returns the number of conflicting pairs touching the course.
func (c *ConflictCache) Tally(title string) int {
	return c.tallies[title]
}

// MostConflictedFirst orders course titles by descending conflict tally.
// Placing highly constrained courses first prunes the search earlier.
func (c *ConflictCache) MostConflictedFirst(candidates models.CourseCandidateSet) []string {
	titles := sortedTitles(candidates)
	sort.SliceStable(titles, func(i, j int) bool {
		return c.tallies[titles[i]] > c.tallies[titles[j]]
	})
	return titles
}

// LeastConflictedFirst orders course titles by ascending conflict tally
// for the greedy fallback path.
func (c *ConflictCache) LeastConflictedFirst(candidates models.CourseCandidateSet) []string {
	titles := sortedTitles(candidates)
	sort.SliceStable(titles, func(i, j int) bool {
		return c.tallies[titles[i]] < c.tallies[titles[j]]
	})
	return titles
}

// BuildConflictReport produces the course-versus-course analysis shown
// to the user: every conflicting section pair with its reason, the
// total, whether every course conflicts with something, and the top
// three most conflicted courses.
func BuildConflictReport(candidates models.CourseCandidateSet) (*models.ConflictReport, error) {
	titles := sortedTitles(candidates)
	report := &models.ConflictReport{
		Pairs: make(map[string]map[string][]models.CourseConflict, len(titles)),
	}
	for _, title := range titles {
		report.Pairs[title] = make(map[string][]models.CourseConflict)
	}

	for i, titleA := range titles {
		for _, titleB := range titles[i+1:] {
			var found []models.CourseConflict
			for _, sectionA := range candidates[titleA] {
				for _, sectionB := range candidates[titleB] {
					verdict, err := CheckConflict(sectionA.Slots, sectionB.Slots)
					if err != nil {
						return nil, err
					}
					if verdict.Conflicts {
						found = append(found, models.CourseConflict{
							SectionA: sectionA.SectionID,
							SectionB: sectionB.SectionID,
							Reason:   verdict.Reason,
						})
					}
				}
			}
			if len(found) > 0 {
				report.Pairs[titleA][titleB] = found
				report.Pairs[titleB][titleA] = found
			}
		}
	}

	report.AllConflicting = len(titles) > 0
	type courseCount struct {
		title string
		count int
	}
	counts := make([]courseCount, 0, len(titles))
	for _, title := range titles {
		pairCount := len(report.Pairs[title])
		report.TotalConflicts += pairCount
		if pairCount == 0 {
			report.AllConflicting = false
		}
		counts = append(counts, courseCount{title: title, count: pairCount})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })
	for i := 0; i < len(counts) && i < 3; i++ {
		if counts[i].count == 0 {
			break
		}
		report.MostConflicted = append(report.MostConflicted, counts[i].title)
	}
	return report, nil
}

func sortedTitles(candidates models.CourseCandidateSet) []string {
	titles := make([]string, 0, len(candidates))
	for title := range candidates {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}
