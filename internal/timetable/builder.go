package timetable

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/classkit/scheduler-api/internal/models"
)

// Fingerprint is the canonical composition key of a variant: sorted
// "title:sectionId" pairs joined. Order-independent by construction.
func Fingerprint(sections []models.Section) string {
	pairs := make([]string, 0, len(sections))
	for _, section := range sections {
		pairs = append(pairs, section.CourseTitle+":"+section.SectionID)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}

// CandidateSetFingerprint keys a whole candidate set by its full
// content, for memoizing generation results. Slot times and enrollment
// numbers steer the search, so they are part of the key: two sets
// sharing titles and section IDs but differing anywhere else must not
// collide. Listing order does not affect the key.
func CandidateSetFingerprint(candidates models.CourseCandidateSet) string {
	h := sha256.New()
	for _, title := range sortedTitles(candidates) {
		entries := make([]string, 0, len(candidates[title]))
		for _, section := range candidates[title] {
			entries = append(entries, sectionContentKey(section))
		}
		sort.Strings(entries)
		io.WriteString(h, title)
		io.WriteString(h, "{"+strings.Join(entries, "|")+"}")
	}
	return hex.EncodeToString(h.Sum(nil))
}

func sectionContentKey(section models.Section) string {
	parts := []string{section.SectionID}
	if section.EnrolledCount != nil {
		parts = append(parts, fmt.Sprintf("e%d", *section.EnrolledCount))
	}
	if section.Capacity != nil {
		parts = append(parts, fmt.Sprintf("c%d", *section.Capacity))
	}
	for _, slot := range section.Slots {
		parts = append(parts, slot.Day+" "+slot.TimeStart+"-"+slot.TimeEnd+" "+slot.ClassType())
	}
	return strings.Join(parts, ";")
}

type variantBuilder struct {
	policy     Policy
	cache      *ConflictCache
	order      []string
	sections   map[string][]models.Section
	results    [][]models.Section
	seen       map[string]struct{}
	ctxErr     error
	checkEvery context.Context
}

// BuildVariants runs the bounded backtracking search and returns every
// distinct, self-consistent, non-conflicting schedule it finds, up to
// the policy cap. Courses are placed most-conflicted first; within a
// course, less-full sections are attempted before fuller ones, ordered
// by how well they mix with the partial schedule. A greedy fallback
// produces one best-effort schedule when the search yields nothing.
// The context is checked at course boundaries so callers can impose a
// time budget.
func BuildVariants(ctx context.Context, candidates models.CourseCandidateSet, cache *ConflictCache, policy Policy) ([]models.ScheduleVariant, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	b := &variantBuilder{
		policy:     policy,
		cache:      cache,
		order:      cache.MostConflictedFirst(candidates),
		sections:   make(map[string][]models.Section, len(candidates)),
		seen:       make(map[string]struct{}),
		checkEvery: ctx,
	}
	for title, offered := range candidates {
		b.sections[title] = sortByOccupancy(offered)
	}

	b.explore(0, nil)
	if b.ctxErr != nil {
		return nil, b.ctxErr
	}

	if len(b.results) == 0 {
		if greedy := b.greedyFallback(candidates); len(greedy) > 0 {
			b.results = append(b.results, greedy)
		}
	}

	variants := make([]models.ScheduleVariant, 0, len(b.results))
	for _, sections := range b.results {
		variants = append(variants, models.ScheduleVariant{Sections: sections})
	}
	return variants, nil
}

func (b *variantBuilder) explore(idx int, partial []models.Section) {
	if b.ctxErr != nil || len(b.results) >= b.policy.MaxVariants {
		return
	}
	if err := b.checkEvery.Err(); err != nil {
		b.ctxErr = err
		return
	}

	if idx >= len(b.order) {
		if len(partial) > 0 {
			b.emit(partial)
		}
		return
	}

	title := b.order[idx]
	byDay := classTypesByDay(partial)

	candidates := make([]models.Section, len(b.sections[title]))
	copy(candidates, b.sections[title])
	sort.SliceStable(candidates, func(i, j int) bool {
		return b.mixScore(candidates[i], byDay) > b.mixScore(candidates[j], byDay)
	})

	for _, section := range candidates {
		if b.conflictsWithAny(section, partial) {
			continue
		}
		next := make([]models.Section, len(partial), len(partial)+1)
		copy(next, partial)
		b.explore(idx+1, append(next, section))
		if len(b.results) >= b.policy.MaxVariants {
			return
		}
	}

	// Skip branch: dropping the course keeps partial-coverage variants
	// reachable when the full set is infeasible.
	b.explore(idx+1, partial)
}

func (b *variantBuilder) emit(partial []models.Section) {
	fingerprint := Fingerprint(partial)
	if _, dup := b.seen[fingerprint]; dup {
		return
	}
	b.seen[fingerprint] = struct{}{}
	kept := make([]models.Section, len(partial))
	copy(kept, partial)
	b.results = append(b.results, kept)
}

func (b *variantBuilder) conflictsWithAny(section models.Section, partial []models.Section) bool {
	for _, chosen := range partial {
		if b.cache.Conflicts(section.SectionID, chosen.SectionID) {
			return true
		}
	}
	return false
}

// mixScore rewards sections whose slots land on empty days or introduce
// a class type the day does not have yet; repeating a type scores lowest.
// A local greedy heuristic, not globally optimal.
func (b *variantBuilder) mixScore(section models.Section, byDay map[string][]string) int {
	score := 0
	for _, slot := range section.Slots {
		existing := byDay[slot.Day]
		slotType := slot.ClassType()
		switch {
		case len(existing) == 0:
			score += b.policy.MixNewDay
		case !containsType(existing, slotType):
			score += b.policy.MixNewType
		case len(existing) >= b.policy.MixPatternDayMin && hasOtherType(existing, slotType):
			score += b.policy.MixKeepsPattern
		default:
			score += b.policy.MixRepeatsType
		}
	}
	return score
}

func (b *variantBuilder) greedyFallback(candidates models.CourseCandidateSet) []models.Section {
	var schedule []models.Section
	for _, title := range b.cache.LeastConflictedFirst(candidates) {
		for _, section := range b.sections[title] {
			if !b.conflictsWithAny(section, schedule) {
				schedule = append(schedule, section)
				break
			}
		}
	}
	return schedule
}

// sortByOccupancy orders sections by ascending fill ratio so less-full
// sections are attempted first. Sections missing enrollment data sort
// after any section that has it.
func sortByOccupancy(offered []models.Section) []models.Section {
	sorted := make([]models.Section, len(offered))
	copy(sorted, offered)
	sort.SliceStable(sorted, func(i, j int) bool {
		ratioI, okI := sorted[i].FillRatio()
		ratioJ, okJ := sorted[j].FillRatio()
		switch {
		case okI && okJ:
			return ratioI < ratioJ
		case okI:
			return true
		case okJ:
			return false
		}
		hasI := sorted[i].EnrolledCount != nil
		hasJ := sorted[j].EnrolledCount != nil
		if hasI && hasJ {
			return *sorted[i].EnrolledCount < *sorted[j].EnrolledCount
		}
		return hasI && !hasJ
	})
	return sorted
}

func classTypesByDay(partial []models.Section) map[string][]string {
	byDay := make(map[string][]string)
	for _, section := range partial {
		for _, slot := range section.Slots {
			byDay[slot.Day] = append(byDay[slot.Day], slot.ClassType())
		}
	}
	return byDay
}

func containsType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func hasOtherType(types []string, want string) bool {
	for _, t := range types {
		if t != want {
			return true
		}
	}
	return false
}
