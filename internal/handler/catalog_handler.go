package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/classkit/scheduler-api/internal/dto"
	"github.com/classkit/scheduler-api/internal/models"
	"github.com/classkit/scheduler-api/internal/service"
	appErrors "github.com/classkit/scheduler-api/pkg/errors"
	"github.com/classkit/scheduler-api/pkg/response"
)

type catalogManager interface {
	Create(ctx context.Context, req dto.CreateCatalogRequest) (*dto.CatalogResponse, error)
	Get(ctx context.Context, id string) (*dto.CatalogResponse, error)
	List(ctx context.Context, query dto.CatalogListQuery) ([]models.Catalog, *models.Pagination, error)
	Update(ctx context.Context, id string, req dto.UpdateCatalogRequest) (*dto.CatalogResponse, error)
	Delete(ctx context.Context, id string) error
}

// CatalogHandler exposes stored catalog endpoints.
type CatalogHandler struct {
	catalogs catalogManager
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalogs *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

// Create godoc
// @Summary Store a manually assembled course catalog
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param payload body dto.CreateCatalogRequest true "Catalog payload"
// @Success 201 {object} response.Envelope
// @Router /catalogs [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid catalog payload"))
		return
	}
	result, err := h.catalogs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get godoc
// @Summary Fetch a catalog with its candidate sets
// @Tags Catalogs
// @Produce json
// @Param id path string true "Catalog ID"
// @Success 200 {object} response.Envelope
// @Router /catalogs/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	result, err := h.catalogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List stored catalogs
// @Tags Catalogs
// @Produce json
// @Param source query string false "Catalog source filter" Enums(roster, portal, manual)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /catalogs [get]
func (h *CatalogHandler) List(c *gin.Context) {
	query := dto.CatalogListQuery{
		Source: c.Query("source"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
	catalogs, pagination, err := h.catalogs.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, catalogs, pagination)
}

// Update godoc
// @Summary Rename a catalog or replace its candidate sets
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param id path string true "Catalog ID"
// @Param payload body dto.UpdateCatalogRequest true "Catalog payload"
// @Success 200 {object} response.Envelope
// @Router /catalogs/{id} [put]
func (h *CatalogHandler) Update(c *gin.Context) {
	var req dto.UpdateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid catalog payload"))
		return
	}
	result, err := h.catalogs.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Delete a stored catalog
// @Tags Catalogs
// @Param id path string true "Catalog ID"
// @Success 204
// @Router /catalogs/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.catalogs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func queryInt(c *gin.Context, key string) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
