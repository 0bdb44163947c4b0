package importer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/classkit/scheduler-api/internal/models"
	appErrors "github.com/classkit/scheduler-api/pkg/errors"
)

// Roster CSV column layout. Exports from the registrar tooling keep
// section cells merged, so continuation rows carry an empty section id
// and only the slot columns.
const (
	colSectionID = 0
	colStatus    = 2
	colCapacity  = 3
	colEnrolled  = 4
	colTitle     = 5
	colClassType = 8
	colDay       = 9
	colTimeStart = 10
	colTimeEnd   = 11
	colRoom      = 12

	rosterMinColumns = 13
)

// RosterResult carries the parsed candidate sets plus row accounting.
type RosterResult struct {
	Courses  models.CourseCandidateSet
	Sections int
	Skipped  int
}

// ParseRoster reads a roster CSV export into course candidate sets.
// The first row is treated as a header. Rows that do not carry enough
// columns, or slot rows with no day, are counted as skipped rather than
// failing the whole import.
func ParseRoster(r io.Reader) (*RosterResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedImport.Code, appErrors.ErrMalformedImport.Status, "roster csv could not be read")
	}
	if len(rows) <= 1 {
		return nil, appErrors.Clone(appErrors.ErrMalformedImport, "roster csv carries no data rows")
	}

	result := &RosterResult{Courses: make(models.CourseCandidateSet)}

	var current *models.Section
	flush := func() {
		if current == nil {
			return
		}
		result.Courses[current.CourseTitle] = append(result.Courses[current.CourseTitle], *current)
		result.Sections++
		current = nil
	}

	for _, row := range rows[1:] {
		if len(row) < rosterMinColumns {
			result.Skipped++
			continue
		}

		sectionID := strings.TrimSpace(row[colSectionID])
		if sectionID != "" {
			flush()
			title := strings.TrimSpace(row[colTitle])
			if title == "" {
				result.Skipped++
				continue
			}
			current = &models.Section{
				SectionID:     sectionID,
				CourseTitle:   title,
				Status:        strings.TrimSpace(row[colStatus]),
				Capacity:      parseCount(row[colCapacity]),
				EnrolledCount: parseCount(row[colEnrolled]),
			}
		}
		if current == nil {
			result.Skipped++
			continue
		}

		slot, ok := rosterSlot(row)
		if !ok {
			result.Skipped++
			continue
		}
		current.Slots = append(current.Slots, slot)
	}
	flush()

	if len(result.Courses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrMalformedImport, "roster csv produced no sections")
	}
	return result, nil
}

func rosterSlot(row []string) (models.TimeSlot, bool) {
	day := strings.TrimSpace(row[colDay])
	start := strings.TrimSpace(row[colTimeStart])
	end := strings.TrimSpace(row[colTimeEnd])
	if !models.IsWeekday(day) || start == "" || end == "" {
		return models.TimeSlot{}, false
	}
	return models.TimeSlot{
		Day:       day,
		TimeStart: start,
		TimeEnd:   end,
		Type:      strings.TrimSpace(row[colClassType]),
		Room:      strings.TrimSpace(row[colRoom]),
	}, true
}

func parseCount(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
