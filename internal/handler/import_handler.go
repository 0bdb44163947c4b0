package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classkit/scheduler-api/internal/dto"
	"github.com/classkit/scheduler-api/internal/service"
	appErrors "github.com/classkit/scheduler-api/pkg/errors"
	"github.com/classkit/scheduler-api/pkg/response"
)

type catalogImporter interface {
	ImportRoster(ctx context.Context, name string, r io.Reader) (*dto.ImportResponse, error)
	ImportPortal(ctx context.Context, name string, r io.Reader) (*dto.ImportResponse, error)
}

// ImportHandler accepts roster CSV and portal HTML uploads.
type ImportHandler struct {
	catalogs       catalogImporter
	maxUploadBytes int64
}

// NewImportHandler constructs the handler.
func NewImportHandler(catalogs *service.CatalogService, maxUploadBytes int64) *ImportHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 * 1024 * 1024
	}
	return &ImportHandler{catalogs: catalogs, maxUploadBytes: maxUploadBytes}
}

// Roster godoc
// @Summary Import a roster CSV export as a course catalog
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Roster CSV file"
// @Param name formData string false "Catalog name"
// @Success 201 {object} response.Envelope
// @Router /imports/roster [post]
func (h *ImportHandler) Roster(c *gin.Context) {
	file, name, ok := h.uploadedFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.catalogs.ImportRoster(c.Request.Context(), name, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Portal godoc
// @Summary Import an offered-courses portal page as a course catalog
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Portal HTML page"
// @Param name formData string false "Catalog name"
// @Success 201 {object} response.Envelope
// @Router /imports/portal [post]
func (h *ImportHandler) Portal(c *gin.Context) {
	file, name, ok := h.uploadedFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.catalogs.ImportPortal(c.Request.Context(), name, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (h *ImportHandler) uploadedFile(c *gin.Context) (io.ReadCloser, string, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "upload requires a file field"))
		return nil, "", false
	}
	if header.Size > h.maxUploadBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "uploaded file exceeds the size limit"))
		return nil, "", false
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "uploaded file could not be read"))
		return nil, "", false
	}
	return file, c.PostForm("name"), true
}
