package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/classkit/scheduler-api/internal/dto"
	"github.com/classkit/scheduler-api/internal/models"
	appErrors "github.com/classkit/scheduler-api/pkg/errors"
)

type catalogManagerMock struct {
	created   dto.CreateCatalogRequest
	listQuery dto.CatalogListQuery
	getErr    error
	deleteErr error
}

func (m *catalogManagerMock) Create(ctx context.Context, req dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	m.created = req
	return &dto.CatalogResponse{Catalog: models.Catalog{ID: "cat-1", Name: req.Name}}, nil
}

func (m *catalogManagerMock) Get(ctx context.Context, id string) (*dto.CatalogResponse, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &dto.CatalogResponse{Catalog: models.Catalog{ID: id, Name: "Fall plan"}}, nil
}

func (m *catalogManagerMock) List(ctx context.Context, query dto.CatalogListQuery) ([]models.Catalog, *models.Pagination, error) {
	m.listQuery = query
	return []models.Catalog{{ID: "cat-1"}}, &models.Pagination{Page: 1, PageSize: 20, TotalItems: 1, TotalPages: 1}, nil
}

func (m *catalogManagerMock) Update(ctx context.Context, id string, req dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	return &dto.CatalogResponse{Catalog: models.Catalog{ID: id, Name: req.Name}}, nil
}

func (m *catalogManagerMock) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func catalogRouter(mock *catalogManagerMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := &CatalogHandler{catalogs: mock}
	r := gin.New()
	r.POST("/catalogs", handler.Create)
	r.GET("/catalogs", handler.List)
	r.GET("/catalogs/:id", handler.Get)
	r.PUT("/catalogs/:id", handler.Update)
	r.DELETE("/catalogs/:id", handler.Delete)
	return r
}

func TestCatalogCreate(t *testing.T) {
	mock := &catalogManagerMock{}
	router := catalogRouter(mock)
	payload := []byte(`{
		"name": "Fall plan",
		"courses": [
			{"title": "Algorithms", "sections": [{"sectionId": "A1", "slots": []}]}
		]
	}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/catalogs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "Fall plan", mock.created.Name)
	require.Contains(t, w.Body.String(), `"id":"cat-1"`)
}

func TestCatalogCreateInvalidJSON(t *testing.T) {
	router := catalogRouter(&catalogManagerMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/catalogs", bytes.NewReader([]byte(`{"name":`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogGetNotFound(t *testing.T) {
	mock := &catalogManagerMock{getErr: appErrors.ErrNotFound}
	router := catalogRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/catalogs/missing", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), appErrors.ErrNotFound.Code)
}

func TestCatalogListParsesQuery(t *testing.T) {
	mock := &catalogManagerMock{}
	router := catalogRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/catalogs?source=roster&page=3&limit=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "roster", mock.listQuery.Source)
	require.Equal(t, 3, mock.listQuery.Page)
	require.Equal(t, 10, mock.listQuery.Limit)
	require.Contains(t, w.Body.String(), `"total_items":1`)
}

func TestCatalogDelete(t *testing.T) {
	router := catalogRouter(&catalogManagerMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/catalogs/cat-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.String())
}

func TestCatalogDeleteNotFound(t *testing.T) {
	router := catalogRouter(&catalogManagerMock{deleteErr: appErrors.ErrNotFound})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/catalogs/cat-9", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
