package timetable

import (
	"sort"

	"github.com/classkit/scheduler-api/internal/models"
)

// BuildDayBreakdown organizes a variant into per-day chronological
// class lists with idle-time annotations between consecutive classes.
// All seven days are present so renderers show a consistent week.
func BuildDayBreakdown(variant models.ScheduleVariant) ([]models.DayBreakdown, error) {
	type placed struct {
		class models.DayClass
		iv    interval
	}
	byDay := make(map[string][]placed, len(models.Weekdays))

	for _, section := range variant.Sections {
		for _, slot := range section.Slots {
			iv, err := slotInterval(slot)
			if err != nil {
				return nil, err
			}
			byDay[slot.Day] = append(byDay[slot.Day], placed{
				class: models.DayClass{
					CourseTitle: section.CourseTitle,
					SectionID:   section.SectionID,
					TimeStart:   slot.TimeStart,
					TimeEnd:     slot.TimeEnd,
					Type:        slot.ClassType(),
					Room:        slot.Room,
				},
				iv: iv,
			})
		}
	}

	breakdown := make([]models.DayBreakdown, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		entries := byDay[day]
		sort.Slice(entries, func(i, j int) bool { return entries[i].iv.start < entries[j].iv.start })

		dayView := models.DayBreakdown{Day: day}
		for _, entry := range entries {
			dayView.Classes = append(dayView.Classes, entry.class)
		}
		for i := 0; i+1 < len(entries); i++ {
			gap := entries[i+1].iv.start - entries[i].iv.end
			if gap <= 0 {
				continue
			}
			dayView.FreeTime = append(dayView.FreeTime, models.FreeTime{
				Start:    FormatMinutes(entries[i].iv.end),
				End:      FormatMinutes(entries[i+1].iv.start),
				Duration: FormatDuration(gap),
			})
		}
		breakdown = append(breakdown, dayView)
	}
	return breakdown, nil
}
