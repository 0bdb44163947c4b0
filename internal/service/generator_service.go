package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classkit/scheduler-api/internal/dto"
	"github.com/classkit/scheduler-api/internal/models"
	"github.com/classkit/scheduler-api/internal/timetable"
	appErrors "github.com/classkit/scheduler-api/pkg/errors"
)

// variantCachePrefix namespaces memoized generation results in Redis.
const variantCachePrefix = "variants:"

// GeneratorConfig governs generation behaviour.
type GeneratorConfig struct {
	Policy   timetable.Policy
	Timeout  time.Duration
	CacheTTL time.Duration
}

type catalogSource interface {
	CandidateSet(ctx context.Context, id string) (models.CourseCandidateSet, error)
}

// GeneratorService validates selections, runs the variant search, and
// memoizes whole results by candidate-set composition. Generation is
// pure over its input, so a composition hit can be served verbatim.
type GeneratorService struct {
	cache     *CacheService
	catalogs  catalogSource
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       GeneratorConfig
}

// NewGeneratorService wires generator dependencies. The catalog source
// may be nil when stored-catalog references are not served.
func NewGeneratorService(cache *CacheService, catalogs catalogSource, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg GeneratorConfig) *GeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Policy.MaxVariants <= 0 {
		cfg.Policy = timetable.DefaultPolicy()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &GeneratorService{cache: cache, catalogs: catalogs, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

// GenerateVariants runs the full pipeline for the selected courses.
func (s *GeneratorService) GenerateVariants(ctx context.Context, req dto.GenerateVariantsRequest) (*dto.GenerateVariantsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course selection")
	}

	candidates := candidateSet(req.Courses)
	if len(candidates) == 0 && req.CatalogID != "" {
		if s.catalogs == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "stored catalog references are not available")
		}
		stored, err := s.catalogs.CandidateSet(ctx, req.CatalogID)
		if err != nil {
			return nil, err
		}
		candidates = stored
	}
	// An empty candidate set is a valid input with an empty answer, not
	// an error state.
	if len(candidates) == 0 {
		return &dto.GenerateVariantsResponse{Variants: []dto.VariantResponse{}, Recommended: -1}, nil
	}

	cacheKey := variantCachePrefix + timetable.CandidateSetFingerprint(candidates)
	if s.cache.Enabled() {
		var cached dto.GenerateVariantsResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil && hit {
			cached.Cached = true
			s.metrics.ObserveGeneration("cached", len(cached.Variants), 0)
			return &cached, nil
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	result, err := timetable.Generate(runCtx, candidates, s.cfg.Policy)
	elapsed := time.Since(start)
	if err != nil {
		return nil, s.generationError(err)
	}

	resp := &dto.GenerateVariantsResponse{
		Variants:    make([]dto.VariantResponse, 0, len(result.Variants)),
		Recommended: result.Recommended,
		Stats: dto.StatsResponse{
			Discovered: result.Stats.Discovered,
			Kept:       result.Stats.Kept,
			CapReached: result.Stats.CapReached,
		},
	}
	for i, ranked := range result.Variants {
		days, err := timetable.BuildDayBreakdown(ranked.Variant)
		if err != nil {
			return nil, s.generationError(err)
		}
		item := dto.VariantResponse{
			Sections: ranked.Variant.Sections,
			Score:    ranked.Score,
			Metrics:  ranked.Metrics,
			Days:     days,
		}
		if i == result.Recommended {
			item.Explanation = timetable.Explain(ranked, len(candidates), s.cfg.Policy)
		}
		resp.Variants = append(resp.Variants, item)
	}

	s.metrics.ObserveGeneration("fresh", len(resp.Variants), elapsed)
	s.logger.Info("variants generated",
		zap.Int("courses", len(candidates)),
		zap.Int("discovered", result.Stats.Discovered),
		zap.Int("kept", result.Stats.Kept),
		zap.Bool("capReached", result.Stats.CapReached),
		zap.Duration("elapsed", elapsed),
	)

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, resp, s.cfg.CacheTTL)
	}
	return resp, nil
}

// ConflictReport inspects pairwise conflicts across the selection
// without running the search.
func (s *GeneratorService) ConflictReport(ctx context.Context, req dto.ConflictReportRequest) (*models.ConflictReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course selection")
	}
	if err := ctx.Err(); err != nil {
		return nil, s.generationError(err)
	}

	candidates := candidateSet(req.Courses)
	report, err := timetable.BuildConflictReport(candidates)
	if err != nil {
		return nil, s.generationError(err)
	}
	return report, nil
}

func (s *GeneratorService) generationError(err error) error {
	var malformed *timetable.MalformedTimeError
	if errors.As(err, &malformed) {
		return appErrors.Wrap(err, appErrors.ErrMalformedTime.Code, appErrors.ErrMalformedTime.Status, malformed.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return appErrors.Wrap(err, "GENERATION_TIMEOUT", 504, "variant search exceeded its time budget")
	}
	if errors.Is(err, context.Canceled) {
		return appErrors.Wrap(err, "REQUEST_CANCELLED", 499, "request cancelled")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "variant generation failed")
}

// candidateSet flattens the request groups into the generator's input,
// merging repeated course titles and defaulting section titles from the
// group.
func candidateSet(courses []dto.CourseSelection) models.CourseCandidateSet {
	set := make(models.CourseCandidateSet, len(courses))
	for _, course := range courses {
		for _, payload := range course.Sections {
			set[course.Title] = append(set[course.Title], payloadSection(payload, course.Title))
		}
	}
	return set
}

func payloadSection(payload dto.SectionPayload, fallbackTitle string) models.Section {
	title := payload.CourseTitle
	if title == "" {
		title = fallbackTitle
	}
	section := models.Section{
		SectionID:     payload.SectionID,
		CourseTitle:   title,
		Status:        payload.Status,
		EnrolledCount: payload.EnrolledCount,
		Capacity:      payload.Capacity,
	}
	for _, slot := range payload.Slots {
		section.Slots = append(section.Slots, models.TimeSlot{
			Day:       slot.Day,
			TimeStart: slot.TimeStart,
			TimeEnd:   slot.TimeEnd,
			Type:      slot.Type,
			Room:      slot.Room,
		})
	}
	return section
}
