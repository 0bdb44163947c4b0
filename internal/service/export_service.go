package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classkit/scheduler-api/internal/dto"
	"github.com/classkit/scheduler-api/internal/models"
	"github.com/classkit/scheduler-api/internal/timetable"
	"github.com/classkit/scheduler-api/pkg/export"
	appErrors "github.com/classkit/scheduler-api/pkg/errors"
)

// ExportFormat labels accepted export encodings.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"Day", "Course", "Section", "Start", "End", "Type", "Room"}

// ExportResult carries a rendered document ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportConfig labels rendered documents.
type ExportConfig struct {
	PDFTitle string
}

// ExportService renders a chosen schedule into CSV or PDF documents.
type ExportService struct {
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService wires exporter dependencies.
func NewExportService(csv *export.CSVExporter, pdf *export.PDFExporter, validate *validator.Validate, logger *zap.Logger, cfg ExportConfig) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PDFTitle == "" {
		cfg.PDFTitle = "Class Schedule"
	}
	return &ExportService{csv: csv, pdf: pdf, validator: validate, logger: logger, cfg: cfg, now: time.Now}
}

// Render produces the requested document for the submitted sections.
func (s *ExportService) Render(ctx context.Context, req dto.ExportScheduleRequest) (*ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sections := make([]models.Section, 0, len(req.Sections))
	for _, payload := range req.Sections {
		sections = append(sections, payloadSection(payload, payload.CourseTitle))
	}

	dataset, err := scheduleDataset(sections)
	if err != nil {
		return nil, err
	}

	stamp := s.now().UTC().Format("20060102")
	switch req.Format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv export failed")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("schedule-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(dataset, s.cfg.PDFTitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf export failed")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("schedule-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}
}

// scheduleDataset flattens sections into one row per weekly meeting,
// ordered Sunday first and chronologically within each day.
func scheduleDataset(sections []models.Section) (export.Dataset, error) {
	type meeting struct {
		dayIndex int
		start    int
		section  models.Section
		slot     models.TimeSlot
	}

	dayOrder := make(map[string]int, len(models.Weekdays))
	for i, day := range models.Weekdays {
		dayOrder[day] = i
	}

	var meetings []meeting
	for _, section := range sections {
		for _, slot := range section.Slots {
			start, err := timetable.ToMinutes(slot.TimeStart)
			if err != nil {
				return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrMalformedTime.Code, appErrors.ErrMalformedTime.Status, err.Error())
			}
			meetings = append(meetings, meeting{
				dayIndex: dayOrder[slot.Day],
				start:    start,
				section:  section,
				slot:     slot,
			})
		}
	}
	sort.SliceStable(meetings, func(i, j int) bool {
		if meetings[i].dayIndex != meetings[j].dayIndex {
			return meetings[i].dayIndex < meetings[j].dayIndex
		}
		return meetings[i].start < meetings[j].start
	})

	dataset := export.NewDataset(exportHeaders...)
	for _, m := range meetings {
		dataset.Append(m.slot.Day, m.section.CourseTitle, m.section.SectionID,
			m.slot.TimeStart, m.slot.TimeEnd, m.slot.ClassType(), m.slot.Room)
	}
	return dataset, nil
}
