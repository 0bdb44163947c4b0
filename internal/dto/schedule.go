package dto

import "github.com/classkit/scheduler-api/internal/models"

// TimeSlotPayload is one weekly meeting of a section.
type TimeSlotPayload struct {
	Day       string `json:"day" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	TimeStart string `json:"timeStart" validate:"required"`
	TimeEnd   string `json:"timeEnd" validate:"required"`
	Type      string `json:"type" validate:"omitempty,oneof=Theory Lab"`
	Room      string `json:"room"`
}

// SectionPayload is a candidate section offered for a course. The
// course title may be omitted inside a CourseSelection, where the group
// title applies.
type SectionPayload struct {
	SectionID     string            `json:"sectionId" validate:"required"`
	CourseTitle   string            `json:"courseTitle"`
	Status        string            `json:"status"`
	EnrolledCount *int              `json:"enrolledCount,omitempty" validate:"omitempty,min=0"`
	Capacity      *int              `json:"capacity,omitempty" validate:"omitempty,min=1"`
	Slots         []TimeSlotPayload `json:"slots" validate:"dive"`
}

// CourseSelection groups the candidate sections of one selected course.
type CourseSelection struct {
	Title    string           `json:"title" validate:"required"`
	Sections []SectionPayload `json:"sections" validate:"required,min=1,dive"`
}

// GenerateVariantsRequest captures POST /schedules/variants payload.
// The candidate set may be supplied inline or referenced by stored
// catalog ID; inline courses win when both are present.
type GenerateVariantsRequest struct {
	CatalogID string            `json:"catalogId" validate:"required_without=Courses"`
	Courses   []CourseSelection `json:"courses" validate:"required_without=CatalogID,omitempty,min=1,dive"`
}

// VariantResponse is one ranked schedule variant.
type VariantResponse struct {
	Sections    []models.Section      `json:"sections"`
	Score       float64               `json:"score"`
	Metrics     models.VariantMetrics `json:"metrics"`
	Days        []models.DayBreakdown `json:"days"`
	Explanation []string              `json:"explanation,omitempty"`
}

// GenerateVariantsResponse returns the ranked variants, the recommended
// index, and search statistics.
type GenerateVariantsResponse struct {
	Variants    []VariantResponse `json:"variants"`
	Recommended int               `json:"recommended"`
	Stats       StatsResponse     `json:"stats"`
	Cached      bool              `json:"cached"`
}

// StatsResponse summarises a generation pass.
type StatsResponse struct {
	Discovered int  `json:"discovered"`
	Kept       int  `json:"kept"`
	CapReached bool `json:"capReached"`
}

// ConflictReportRequest captures POST /schedules/conflicts payload.
type ConflictReportRequest struct {
	Courses []CourseSelection `json:"courses" validate:"required,min=2,dive"`
}

// ExportScheduleRequest captures POST /schedules/export payload.
type ExportScheduleRequest struct {
	Sections []SectionPayload `json:"sections" validate:"required,min=1,dive"`
	Format   string           `json:"format" validate:"required,oneof=csv pdf"`
}
