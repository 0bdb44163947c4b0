package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classkit/scheduler-api/internal/dto"
	"github.com/classkit/scheduler-api/internal/models"
	"github.com/classkit/scheduler-api/internal/service"
	appErrors "github.com/classkit/scheduler-api/pkg/errors"
	"github.com/classkit/scheduler-api/pkg/response"
)

type variantGenerator interface {
	GenerateVariants(ctx context.Context, req dto.GenerateVariantsRequest) (*dto.GenerateVariantsResponse, error)
	ConflictReport(ctx context.Context, req dto.ConflictReportRequest) (*models.ConflictReport, error)
}

type scheduleExporter interface {
	Render(ctx context.Context, req dto.ExportScheduleRequest) (*service.ExportResult, error)
}

// ScheduleHandler exposes variant generation, conflict inspection, and
// export endpoints.
type ScheduleHandler struct {
	generator variantGenerator
	exporter  scheduleExporter
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(generator *service.GeneratorService, exporter *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{generator: generator, exporter: exporter}
}

// GenerateVariants godoc
// @Summary Generate ranked schedule variants for selected courses
// @Description Runs the conflict-aware variant search and returns diverse variants ordered best first, with the recommendation explained.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateVariantsRequest true "Course selection payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/variants [post]
func (h *ScheduleHandler) GenerateVariants(c *gin.Context) {
	var req dto.GenerateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection payload"))
		return
	}
	result, err := h.generator.GenerateVariants(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, map[string]interface{}{"cached": result.Cached})
}

// ConflictReport godoc
// @Summary Inspect pairwise conflicts across a course selection
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.ConflictReportRequest true "Course selection payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/conflicts [post]
func (h *ScheduleHandler) ConflictReport(c *gin.Context) {
	var req dto.ConflictReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection payload"))
		return
	}
	report, err := h.generator.ConflictReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Export godoc
// @Summary Export a chosen schedule as CSV or PDF
// @Tags Schedules
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param payload body dto.ExportScheduleRequest true "Export payload"
// @Success 200 {file} file
// @Router /schedules/export [post]
func (h *ScheduleHandler) Export(c *gin.Context) {
	var req dto.ExportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	result, err := h.exporter.Render(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
