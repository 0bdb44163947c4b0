package models

import "time"

// Catalog is a stored import of a student's course candidate set. Only
// the input data is persisted; generated schedules never are.
type Catalog struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Source    string    `db:"source" json:"source"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Catalog source values.
const (
	CatalogSourceRoster = "roster"
	CatalogSourcePortal = "portal"
	CatalogSourceManual = "manual"
)

// CatalogFilter describes query params for listing catalogs.
type CatalogFilter struct {
	Source   string
	Page     int
	PageSize int
}

// Pagination captures list paging metadata for the response envelope.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
