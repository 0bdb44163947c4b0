package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classkit/scheduler-api/internal/dto"
	appErrors "github.com/classkit/scheduler-api/pkg/errors"
)

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	return NewExportService(nil, nil, nil, zap.NewNop(), ExportConfig{PDFTitle: "Weekly Schedule"})
}

func exportPayload(id, title, day, start, end, classType, room string) dto.SectionPayload {
	return dto.SectionPayload{
		SectionID:   id,
		CourseTitle: title,
		Slots: []dto.TimeSlotPayload{
			{Day: day, TimeStart: start, TimeEnd: end, Type: classType, Room: room},
		},
	}
}

func TestExportServiceRenderCSV(t *testing.T) {
	svc := newExportServiceForTest(t)

	req := dto.ExportScheduleRequest{
		Format: "csv",
		Sections: []dto.SectionPayload{
			exportPayload("PHY-1", "Physics", "Tuesday", "11:00 AM", "12:30 PM", "Lab", "L-204"),
			exportPayload("ALG-1", "Algorithms", "Monday", "9:00 AM", "10:30 AM", "Theory", "R-101"),
		},
	}

	result, err := svc.Render(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Day,Course,Section,Start,End,Type,Room", lines[0])
	assert.Contains(t, lines[1], "Monday", "rows are ordered by weekday")
	assert.Contains(t, lines[2], "Tuesday")
}

func TestExportServiceRenderPDF(t *testing.T) {
	svc := newExportServiceForTest(t)

	req := dto.ExportScheduleRequest{
		Format: "pdf",
		Sections: []dto.SectionPayload{
			exportPayload("ALG-1", "Algorithms", "Monday", "9:00 AM", "10:30 AM", "Theory", "R-101"),
		},
	}

	result, err := svc.Render(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("%PDF")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(t)

	req := dto.ExportScheduleRequest{
		Format: "docx",
		Sections: []dto.SectionPayload{
			exportPayload("ALG-1", "Algorithms", "Monday", "9:00 AM", "10:30 AM", "Theory", "R-101"),
		},
	}

	_, err := svc.Render(context.Background(), req)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExportServiceMalformedTime(t *testing.T) {
	svc := newExportServiceForTest(t)

	req := dto.ExportScheduleRequest{
		Format: "csv",
		Sections: []dto.SectionPayload{
			exportPayload("ALG-1", "Algorithms", "Monday", "morningish", "10:30 AM", "Theory", "R-101"),
		},
	}

	_, err := svc.Render(context.Background(), req)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrMalformedTime.Code, appErr.Code)
}
