// Package query builds filtered, sorted and paginated listings over GORM
// models. Every entity listing in the service goes through the same engine:
// a per-entity Spec declares the sortable-column allow-list, the searchable
// columns and the defaults, and Paginate applies validated request
// parameters on top of a base query.
package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
)

// Direction is a validated sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

const (
	// DefaultPerPage is the page size when the caller does not send one.
	DefaultPerPage = 10
	// MaxPerPage caps the page size; larger requests are clamped, not
	// rejected.
	MaxPerPage = 100
)

// Params are the raw listing parameters as bound from the request. Zero
// values mean "not provided".
type Params struct {
	Search        string `form:"search"         json:"search"`
	Estado        string `form:"estado"         json:"estado"`
	EditorID      uint   `form:"editor_id"      json:"editor_id"`
	SortBy        string `form:"sort_by"        json:"sort_by"`
	SortDirection string `form:"sort_direction" json:"sort_direction"`
	Page          int    `form:"page"           json:"page"`
	PerPage       int    `form:"per_page"       json:"per_page"`
}

// Filters is the echoed filter state returned with every page so the caller
// can rebuild pagination links without losing context. Sort fields are the
// normalized values actually applied.
type Filters struct {
	Search        string `json:"search"`
	Estado        string `json:"estado"`
	EditorID      uint   `json:"editor_id,omitempty"`
	SortBy        string `json:"sort_by"`
	SortDirection string `json:"sort_direction"`
	PerPage       int    `json:"per_page"`
}

// Page is one page of results plus pagination metadata.
type Page[T any] struct {
	Items      []T     `json:"items"`
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	Total      int64   `json:"total"`
	TotalPages int     `json:"total_pages"`
	Filters    Filters `json:"filters"`
}

// Spec declares how one entity may be listed. Sortable maps the exposed
// sort_by names to real columns; anything outside the map is rejected, never
// passed through to SQL.
type Spec struct {
	// DefaultSort is the exposed name used when sort_by is absent. It must
	// be a key of Sortable.
	DefaultSort      string
	DefaultDirection Direction

	// Sortable is the allow-list: exposed name -> column expression.
	Sortable map[string]string

	// SecondarySort, when set, is appended as a fixed ascending tie-break
	// whenever the primary sort column differs from it.
	SecondarySort string

	// SearchColumns are matched with a case-insensitive substring OR when
	// search is present. Ignored when SearchScope is set.
	SearchColumns []string

	// SearchScope overrides SearchColumns for entities whose search spans a
	// joined table.
	SearchScope func(db *gorm.DB, search string) *gorm.DB

	// EstadoColumn and EditorColumn qualify the exact-match filter columns;
	// they default to "estado" and "editor_id".
	EstadoColumn string
	EditorColumn string
}

type normalized struct {
	sortColumn string
	direction  Direction
	sortBy     string
	page       int
	perPage    int
}

// normalize validates sort parameters (fail closed) and clamps pagination.
func (s Spec) normalize(p Params) (normalized, error) {
	n := normalized{
		sortBy:    p.SortBy,
		direction: s.DefaultDirection,
		page:      p.Page,
		perPage:   p.PerPage,
	}

	if n.sortBy == "" {
		n.sortBy = s.DefaultSort
	}

	col, ok := s.Sortable[n.sortBy]
	if !ok {
		return normalized{}, errs.NewValidation("sort_by", fmt.Sprintf("%q is not a sortable column", n.sortBy))
	}

	n.sortColumn = col

	if p.SortDirection != "" {
		switch Direction(strings.ToLower(p.SortDirection)) {
		case Asc:
			n.direction = Asc
		case Desc:
			n.direction = Desc
		default:
			return normalized{}, errs.NewValidation("sort_direction", fmt.Sprintf("%q is not a valid direction", p.SortDirection))
		}
	}

	if n.direction == "" {
		n.direction = Asc
	}

	if n.page <= 0 {
		n.page = 1
	}

	if n.perPage <= 0 {
		n.perPage = DefaultPerPage
	}

	if n.perPage > MaxPerPage {
		n.perPage = MaxPerPage
	}

	return n, nil
}

func (s Spec) estadoColumn() string {
	if s.EstadoColumn != "" {
		return s.EstadoColumn
	}

	return "estado"
}

func (s Spec) editorColumn() string {
	if s.EditorColumn != "" {
		return s.EditorColumn
	}

	return "editor_id"
}

// applyFilters attaches the optional search/estado/editor conditions.
// Absent or empty parameters add no condition at all.
func (s Spec) applyFilters(db *gorm.DB, p Params) *gorm.DB {
	if p.Search != "" {
		if s.SearchScope != nil {
			db = s.SearchScope(db, p.Search)
		} else if len(s.SearchColumns) > 0 {
			like := "%" + strings.ToLower(p.Search) + "%"

			conds := make([]string, 0, len(s.SearchColumns))
			args := make([]any, 0, len(s.SearchColumns))

			for _, col := range s.SearchColumns {
				conds = append(conds, "LOWER("+col+") LIKE ?")
				args = append(args, like)
			}

			db = db.Where(strings.Join(conds, " OR "), args...)
		}
	}

	if p.Estado != "" {
		db = db.Where(s.estadoColumn()+" = ?", p.Estado)
	}

	if p.EditorID != 0 {
		db = db.Where(s.editorColumn()+" = ?", p.EditorID)
	}

	return db
}

// Paginate runs the composed query and returns one page of T. The base db
// must already carry Model/Preload/scoping; Paginate adds filters, ordering
// and offset pagination (1-indexed), and echoes the applied filter state.
func Paginate[T any](db *gorm.DB, spec Spec, p Params) (*Page[T], error) {
	n, err := spec.normalize(p)
	if err != nil {
		return nil, err
	}

	dbx := spec.applyFilters(db, p)

	var total int64
	if err := dbx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	order := n.sortColumn + " " + string(n.direction)
	if spec.SecondarySort != "" && n.sortColumn != spec.SecondarySort {
		order += ", " + spec.SecondarySort + " asc"
	}

	items := make([]T, 0, n.perPage)
	if err := dbx.Order(order).Offset((n.page - 1) * n.perPage).Limit(n.perPage).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	totalPages := int((total + int64(n.perPage) - 1) / int64(n.perPage))

	return &Page[T]{
		Items:      items,
		Page:       n.page,
		PerPage:    n.perPage,
		Total:      total,
		TotalPages: totalPages,
		Filters: Filters{
			Search:        p.Search,
			Estado:        p.Estado,
			EditorID:      p.EditorID,
			SortBy:        n.sortBy,
			SortDirection: string(n.direction),
			PerPage:       n.perPage,
		},
	}, nil
}
