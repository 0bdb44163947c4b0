package models

// ScheduleVariant is one complete candidate schedule: at most one
// section per course, pairwise non-conflicting.
type ScheduleVariant struct {
	Sections []Section `json:"sections"`
}

// CourseTitles returns the distinct course titles covered by the variant.
func (v ScheduleVariant) CourseTitles() []string {
	titles := make([]string, 0, len(v.Sections))
	seen := make(map[string]struct{}, len(v.Sections))
	for _, section := range v.Sections {
		if _, ok := seen[section.CourseTitle]; ok {
			continue
		}
		seen[section.CourseTitle] = struct{}{}
		titles = append(titles, section.CourseTitle)
	}
	return titles
}

// VariantMetrics are the presentation-pass quality measurements.
type VariantMetrics struct {
	CourseCount  int     `json:"courseCount"`
	GapScore     float64 `json:"gapScore"`
	BalancedDays float64 `json:"balancedDays"`
	EarlyClasses int     `json:"earlyClasses"`
	Compactness  float64 `json:"compactness"`
	MixPattern   float64 `json:"mixPattern"`
}

// RankedVariant pairs a variant with its presentation score and metrics.
// Recomputed on every ranking pass, never persisted.
type RankedVariant struct {
	Variant ScheduleVariant `json:"variant"`
	Score   float64         `json:"score"`
	Metrics VariantMetrics  `json:"metrics"`
}

// DayClass is one class occurrence in a per-day breakdown.
type DayClass struct {
	CourseTitle string `json:"courseTitle"`
	SectionID   string `json:"sectionId"`
	TimeStart   string `json:"timeStart"`
	TimeEnd     string `json:"timeEnd"`
	Type        string `json:"type"`
	Room        string `json:"room"`
}

// FreeTime is an idle window between two consecutive classes on a day.
type FreeTime struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration string `json:"duration"`
}

// DayBreakdown lists a day's classes in chronological order together
// with the idle gaps between them.
type DayBreakdown struct {
	Day      string     `json:"day"`
	Classes  []DayClass `json:"classes"`
	FreeTime []FreeTime `json:"freeTime"`
}

// CourseConflict describes one conflicting section pair between two courses.
type CourseConflict struct {
	SectionA string `json:"sectionA"`
	SectionB string `json:"sectionB"`
	Reason   string `json:"reason"`
}

// ConflictReport summarises pairwise conflicts across the candidate set.
type ConflictReport struct {
	Pairs          map[string]map[string][]CourseConflict `json:"pairs"`
	TotalConflicts int                                    `json:"totalConflicts"`
	AllConflicting bool                                   `json:"allConflicting"`
	MostConflicted []string                               `json:"mostConflicted"`
}
