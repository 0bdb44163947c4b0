package service

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classkit/scheduler-api/internal/dto"
	"github.com/classkit/scheduler-api/internal/importer"
	"github.com/classkit/scheduler-api/internal/models"
	"github.com/classkit/scheduler-api/internal/timetable"
	appErrors "github.com/classkit/scheduler-api/pkg/errors"
)

type catalogRepository interface {
	Create(ctx context.Context, name, source string, courses models.CourseCandidateSet) (*models.Catalog, error)
	Get(ctx context.Context, id string) (*models.Catalog, error)
	Courses(ctx context.Context, catalogID string) (models.CourseCandidateSet, error)
	List(ctx context.Context, filter models.CatalogFilter) ([]models.Catalog, int, error)
	Update(ctx context.Context, id, name string, courses models.CourseCandidateSet) (*models.Catalog, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type variantCache interface {
	Invalidate(ctx context.Context, pattern string) error
}

// CatalogService manages stored course catalogs and the roster/portal
// imports that feed them.
type CatalogService struct {
	repo      catalogRepository
	cache     variantCache
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService wires catalog dependencies. The cache may be nil
// when no memoized generation results need evicting.
func NewCatalogService(repo catalogRepository, cache variantCache, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Create stores a manually assembled catalog.
func (s *CatalogService) Create(ctx context.Context, req dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid catalog payload")
	}

	source := req.Source
	if source == "" {
		source = models.CatalogSourceManual
	}

	courses := candidateSet(req.Courses)
	catalog, err := s.repo.Create(ctx, req.Name, source, courses)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "catalog could not be stored")
	}

	s.logger.Info("catalog created", zap.String("id", catalog.ID), zap.String("source", source), zap.Int("courses", len(courses)))
	return &dto.CatalogResponse{Catalog: *catalog, Courses: courses}, nil
}

// Get loads a catalog with its candidate sets.
func (s *CatalogService) Get(ctx context.Context, id string) (*dto.CatalogResponse, error) {
	catalog, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "catalog lookup failed")
	}
	if catalog == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "catalog not found")
	}

	courses, err := s.repo.Courses(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "catalog sections could not be loaded")
	}
	return &dto.CatalogResponse{Catalog: *catalog, Courses: courses}, nil
}

// CandidateSet resolves a stored catalog into the course candidate set
// the generator consumes.
func (s *CatalogService) CandidateSet(ctx context.Context, id string) (models.CourseCandidateSet, error) {
	catalog, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "catalog lookup failed")
	}
	if catalog == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "catalog not found")
	}
	return s.repo.Courses(ctx, id)
}

// List returns catalog summaries with pagination metadata.
func (s *CatalogService) List(ctx context.Context, query dto.CatalogListQuery) ([]models.Catalog, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid catalog query")
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	catalogs, total, err := s.repo.List(ctx, models.CatalogFilter{Source: query.Source, Page: page, PageSize: limit})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "catalog listing failed")
	}

	pagination := &models.Pagination{
		Page:       page,
		PageSize:   limit,
		TotalItems: total,
		TotalPages: (total + limit - 1) / limit,
	}
	return catalogs, pagination, nil
}

// Update renames a catalog and optionally replaces its candidate sets.
func (s *CatalogService) Update(ctx context.Context, id string, req dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid catalog payload")
	}

	var courses models.CourseCandidateSet
	if len(req.Courses) > 0 {
		courses = candidateSet(req.Courses)
		// The outgoing candidate set takes its memoized variants with it.
		s.evictVariants(ctx, id)
	}

	catalog, err := s.repo.Update(ctx, id, req.Name, courses)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "catalog could not be updated")
	}
	if catalog == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "catalog not found")
	}
	return &dto.CatalogResponse{Catalog: *catalog, Courses: courses}, nil
}

// Delete removes a catalog.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	s.evictVariants(ctx, id)
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "catalog could not be deleted")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "catalog not found")
	}
	return nil
}

// evictVariants drops the memoized generation result keyed by the
// catalog's current candidate set. Eviction failures only cost cache
// space until the TTL expires, so they are not surfaced.
func (s *CatalogService) evictVariants(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	courses, err := s.repo.Courses(ctx, id)
	if err != nil || len(courses) == 0 {
		return
	}
	_ = s.cache.Invalidate(ctx, variantCachePrefix+timetable.CandidateSetFingerprint(courses))
}

// ImportRoster parses a roster CSV upload and stores it as a catalog.
func (s *CatalogService) ImportRoster(ctx context.Context, name string, r io.Reader) (*dto.ImportResponse, error) {
	result, err := importer.ParseRoster(r)
	if err != nil {
		return nil, err
	}
	return s.storeImport(ctx, name, models.CatalogSourceRoster, result)
}

// ImportPortal parses an offered-courses portal page and stores it as a
// catalog.
func (s *CatalogService) ImportPortal(ctx context.Context, name string, r io.Reader) (*dto.ImportResponse, error) {
	result, err := importer.ParsePortal(r)
	if err != nil {
		return nil, err
	}
	return s.storeImport(ctx, name, models.CatalogSourcePortal, result)
}

func (s *CatalogService) storeImport(ctx context.Context, name, source string, result *importer.RosterResult) (*dto.ImportResponse, error) {
	if name == "" {
		name = "Imported catalog"
	}

	catalog, err := s.repo.Create(ctx, name, source, result.Courses)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "imported catalog could not be stored")
	}

	s.logger.Info("catalog imported",
		zap.String("id", catalog.ID),
		zap.String("source", source),
		zap.Int("courses", len(result.Courses)),
		zap.Int("sections", result.Sections),
		zap.Int("skipped", result.Skipped),
	)

	return &dto.ImportResponse{
		CatalogID: catalog.ID,
		Courses:   len(result.Courses),
		Sections:  result.Sections,
		Skipped:   result.Skipped,
	}, nil
}
