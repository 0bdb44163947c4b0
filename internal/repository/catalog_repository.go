package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classkit/scheduler-api/internal/models"
)

// CatalogRepository persists imported course catalogs: the catalog row
// plus its candidate sections and their weekly slots.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type sectionRow struct {
	ID            string  `db:"id"`
	SectionID     string  `db:"section_id"`
	CourseTitle   string  `db:"course_title"`
	Status        string  `db:"status"`
	EnrolledCount *int    `db:"enrolled_count"`
	Capacity      *int    `db:"capacity"`
	Day           *string `db:"day"`
	TimeStart     *string `db:"time_start"`
	TimeEnd       *string `db:"time_end"`
	ClassType     *string `db:"class_type"`
	Room          *string `db:"room"`
}

// Create stores a new catalog with its candidate sets in one transaction.
func (r *CatalogRepository) Create(ctx context.Context, name, source string, courses models.CourseCandidateSet) (*models.Catalog, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin catalog transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	catalog := &models.Catalog{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}

	const insertCatalog = `INSERT INTO catalogs (id, name, source, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err = tx.ExecContext(ctx, insertCatalog, catalog.ID, catalog.Name, catalog.Source, catalog.CreatedAt, catalog.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert catalog: %w", err)
	}

	if err = insertSections(ctx, tx, catalog.ID, courses); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit catalog: %w", err)
	}
	return catalog, nil
}

// Get fetches a catalog row, or nil when it does not exist.
func (r *CatalogRepository) Get(ctx context.Context, id string) (*models.Catalog, error) {
	const query = `SELECT id, name, source, created_at, updated_at FROM catalogs WHERE id = $1`

	var catalog models.Catalog
	if err := r.db.GetContext(ctx, &catalog, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return &catalog, nil
}

// Courses loads the candidate sets of a catalog, slots ordered as
// stored.
func (r *CatalogRepository) Courses(ctx context.Context, catalogID string) (models.CourseCandidateSet, error) {
	const query = `
SELECT
	s.id,
	s.section_id,
	s.course_title,
	s.status,
	s.enrolled_count,
	s.capacity,
	sl.day,
	sl.time_start,
	sl.time_end,
	sl.class_type,
	sl.room
FROM catalog_sections s
LEFT JOIN catalog_slots sl ON sl.section_pk = s.id
WHERE s.catalog_id = $1
ORDER BY s.course_title, s.section_id, sl.position`

	var rows []sectionRow
	if err := r.db.SelectContext(ctx, &rows, query, catalogID); err != nil {
		return nil, fmt.Errorf("load catalog sections: %w", err)
	}

	courses := make(models.CourseCandidateSet)
	index := make(map[string]int)
	for _, row := range rows {
		sections := courses[row.CourseTitle]
		pos, seen := index[row.ID]
		if !seen {
			sections = append(sections, models.Section{
				SectionID:     row.SectionID,
				CourseTitle:   row.CourseTitle,
				Status:        row.Status,
				EnrolledCount: row.EnrolledCount,
				Capacity:      row.Capacity,
			})
			pos = len(sections) - 1
			index[row.ID] = pos
			courses[row.CourseTitle] = sections
		}
		if row.Day != nil {
			slot := models.TimeSlot{
				Day:       *row.Day,
				TimeStart: deref(row.TimeStart),
				TimeEnd:   deref(row.TimeEnd),
				Type:      deref(row.ClassType),
				Room:      deref(row.Room),
			}
			courses[row.CourseTitle][pos].Slots = append(courses[row.CourseTitle][pos].Slots, slot)
		}
	}
	return courses, nil
}

// List returns catalogs matching the filter plus the total count for
// pagination.
func (r *CatalogRepository) List(ctx context.Context, filter models.CatalogFilter) ([]models.Catalog, int, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT id, name, source, created_at, updated_at FROM catalogs WHERE 1=1`)

	countQuery := strings.Builder{}
	countQuery.WriteString(`SELECT COUNT(*) FROM catalogs WHERE 1=1`)

	var args []interface{}
	if filter.Source != "" {
		args = append(args, filter.Source)
		fmt.Fprintf(&query, " AND source = $%d", len(args))
		fmt.Fprintf(&countQuery, " AND source = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("count catalogs: %w", err)
	}

	query.WriteString(" ORDER BY created_at DESC")
	if filter.PageSize > 0 {
		args = append(args, filter.PageSize)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		args = append(args, offset)
		fmt.Fprintf(&query, " OFFSET $%d", len(args))
	}

	var catalogs []models.Catalog
	if err := r.db.SelectContext(ctx, &catalogs, query.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("list catalogs: %w", err)
	}
	return catalogs, total, nil
}

// Update renames a catalog and, when courses are supplied, replaces its
// candidate sets atomically.
func (r *CatalogRepository) Update(ctx context.Context, id, name string, courses models.CourseCandidateSet) (*models.Catalog, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin catalog update: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var catalog models.Catalog
	const lockQuery = `SELECT id, name, source, created_at, updated_at FROM catalogs WHERE id = $1 FOR UPDATE`
	if err = tx.GetContext(ctx, &catalog, lockQuery, id); err != nil {
		if err == sql.ErrNoRows {
			err = nil
			_ = tx.Rollback()
			return nil, nil
		}
		return nil, fmt.Errorf("lock catalog: %w", err)
	}

	if name != "" {
		catalog.Name = name
	}
	catalog.UpdatedAt = time.Now().UTC()

	const updateQuery = `UPDATE catalogs SET name = $1, updated_at = $2 WHERE id = $3`
	if _, err = tx.ExecContext(ctx, updateQuery, catalog.Name, catalog.UpdatedAt, catalog.ID); err != nil {
		return nil, fmt.Errorf("update catalog: %w", err)
	}

	if courses != nil {
		const deleteSections = `DELETE FROM catalog_sections WHERE catalog_id = $1`
		if _, err = tx.ExecContext(ctx, deleteSections, catalog.ID); err != nil {
			return nil, fmt.Errorf("clear catalog sections: %w", err)
		}
		if err = insertSections(ctx, tx, catalog.ID, courses); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit catalog update: %w", err)
	}
	return &catalog, nil
}

// Delete removes a catalog; slot and section rows cascade.
func (r *CatalogRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM catalogs WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete catalog: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete catalog result: %w", err)
	}
	return affected > 0, nil
}

func insertSections(ctx context.Context, tx *sqlx.Tx, catalogID string, courses models.CourseCandidateSet) error {
	const insertSection = `INSERT INTO catalog_sections (id, catalog_id, section_id, course_title, status, enrolled_count, capacity)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	const insertSlot = `INSERT INTO catalog_slots (id, section_pk, day, time_start, time_end, class_type, room, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, sections := range courses {
		for _, section := range sections {
			pk := uuid.NewString()
			if _, err := tx.ExecContext(ctx, insertSection, pk, catalogID, section.SectionID, section.CourseTitle, section.Status, section.EnrolledCount, section.Capacity); err != nil {
				return fmt.Errorf("insert catalog section: %w", err)
			}
			for i, slot := range section.Slots {
				if _, err := tx.ExecContext(ctx, insertSlot, uuid.NewString(), pk, slot.Day, slot.TimeStart, slot.TimeEnd, slot.ClassType(), slot.Room, i); err != nil {
					return fmt.Errorf("insert catalog slot: %w", err)
				}
			}
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
