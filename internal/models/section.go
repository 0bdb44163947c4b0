package models

// Weekday names as they appear in portal exports. Sunday first to match
// the source portal's week layout.
var Weekdays = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

var weekdaySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Weekdays))
	for _, day := range Weekdays {
		set[day] = struct{}{}
	}
	return set
}()

// IsWeekday reports whether name is one of the seven known day names.
func IsWeekday(name string) bool {
	_, ok := weekdaySet[name]
	return ok
}

// Class type values carried on time slots.
const (
	ClassTypeTheory = "Theory"
	ClassTypeLab    = "Lab"
)

// TimeSlot is one weekly recurring time block within a section.
type TimeSlot struct {
	Day       string `db:"day_of_week" json:"day" validate:"required"`
	TimeStart string `db:"time_start" json:"timeStart" validate:"required"`
	TimeEnd   string `db:"time_end" json:"timeEnd" validate:"required"`
	Type      string `db:"class_type" json:"type"`
	Room      string `db:"room" json:"room"`
}

// ClassType returns the slot type, defaulting to Theory when the source
// data omitted it.
func (s TimeSlot) ClassType() string {
	if s.Type == "" {
		return ClassTypeTheory
	}
	return s.Type
}

// Section is one offered instance of a course with its own slots and
// enrollment numbers. SectionID is unique across all courses.
type Section struct {
	SectionID     string     `db:"section_id" json:"sectionId" validate:"required"`
	CourseTitle   string     `db:"course_title" json:"courseTitle" validate:"required"`
	Status        string     `db:"status" json:"status"`
	EnrolledCount *int       `db:"enrolled_count" json:"enrolledCount,omitempty"`
	Capacity      *int       `db:"capacity" json:"capacity,omitempty"`
	Slots         []TimeSlot `json:"slots" validate:"dive"`
}

// FillRatio returns enrolled/capacity and whether both numbers are known.
func (s Section) FillRatio() (float64, bool) {
	if s.EnrolledCount == nil || s.Capacity == nil || *s.Capacity <= 0 {
		return 0, false
	}
	return float64(*s.EnrolledCount) / float64(*s.Capacity), true
}

// CourseCandidateSet maps a course title to every section offered for it.
// Course titles are pairwise distinct within one generation call.
type CourseCandidateSet map[string][]Section
