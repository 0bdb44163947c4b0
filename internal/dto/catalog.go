package dto

import "github.com/classkit/scheduler-api/internal/models"

// CreateCatalogRequest captures POST /catalogs payload.
type CreateCatalogRequest struct {
	Name    string            `json:"name" validate:"required,min=1,max=120"`
	Source  string            `json:"source" validate:"omitempty,oneof=roster portal manual"`
	Courses []CourseSelection `json:"courses" validate:"required,min=1,dive"`
}

// UpdateCatalogRequest captures PUT /catalogs/:id payload.
type UpdateCatalogRequest struct {
	Name    string            `json:"name" validate:"omitempty,min=1,max=120"`
	Courses []CourseSelection `json:"courses" validate:"omitempty,min=1,dive"`
}

// CatalogResponse is a stored catalog plus its candidate sets.
type CatalogResponse struct {
	Catalog models.Catalog            `json:"catalog"`
	Courses models.CourseCandidateSet `json:"courses,omitempty"`
}

// CatalogListQuery filters GET /catalogs.
type CatalogListQuery struct {
	Source string `form:"source" validate:"omitempty,oneof=roster portal manual"`
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// ImportResponse summarises an accepted roster or portal import.
type ImportResponse struct {
	CatalogID string `json:"catalogId,omitempty"`
	Courses   int    `json:"courses"`
	Sections  int    `json:"sections"`
	Skipped   int    `json:"skipped"`
}
