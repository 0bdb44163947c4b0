package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedTimeError reports a clock string the parser could not read.
type MalformedTimeError struct {
	Value string
}

// Error implements the error interface.
func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("malformed clock time %q", e.Value)
}

const minutesPerDay = 24 * 60

// ToMinutes converts a 12-hour clock string such as "2:30 PM" into a
// minute offset in [0, 1440). 12 AM maps to 0 and 12 PM stays 12; other
// PM hours add 12. There is no date or timezone component, only a
// weekly recurring offset.
func ToMinutes(clock string) (int, error) {
	trimmed := strings.TrimSpace(clock)
	fields := strings.Fields(trimmed)
	if len(fields) != 2 {
		return 0, &MalformedTimeError{Value: clock}
	}

	meridiem := strings.ToUpper(fields[1])
	if meridiem != "AM" && meridiem != "PM" {
		return 0, &MalformedTimeError{Value: clock}
	}

	parts := strings.SplitN(fields[0], ":", 2)
	if len(parts) != 2 {
		return 0, &MalformedTimeError{Value: clock}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &MalformedTimeError{Value: clock}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &MalformedTimeError{Value: clock}
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, &MalformedTimeError{Value: clock}
	}

	if meridiem == "PM" && hour != 12 {
		hour += 12
	} else if meridiem == "AM" && hour == 12 {
		hour = 0
	}

	return hour*60 + minute, nil
}

// FormatMinutes renders a minute offset back into 12-hour clock form,
// e.g. 810 -> "1:30 PM". Offsets wrap at midnight.
func FormatMinutes(offset int) string {
	offset = ((offset % minutesPerDay) + minutesPerDay) % minutesPerDay
	hour := offset / 60
	minute := offset % 60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, meridiem)
}

// FormatDuration renders a minute count as a compact "1h 30m" style
// label for idle-time annotations.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	rest := minutes % 60
	switch {
	case hours > 0 && rest > 0:
		return fmt.Sprintf("%dh %dm", hours, rest)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", rest)
	}
}
