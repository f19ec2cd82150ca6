package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Pagination and sorting defaults shared by both repositories.
const (
	DefaultPage   = 1
	DefaultLimit  = 5
	DefaultSortBy = "createdAt"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListParams describes a paginated listing request. FilterBy/FilterValue is
// an exact match on a single allowlisted field; Query is an independent
// case-insensitive substring match on name. Both may be combined.
// Zero values fall back to the defaults above.
type ListParams struct {
	FilterBy    string
	FilterValue string
	Query       string
	SortBy      string
	Order       string
	Page        int
	Limit       int
}

// Normalized returns a copy with defaults applied. Page is 1-indexed; any
// order other than "asc" sorts descending.
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.Order != OrderAsc {
		p.Order = OrderDesc
	}
	return p
}

func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

// applyFilter narrows tx to the rows matched by p, resolving the filter
// field through the entity's allowlist. The same filtered query is used for
// both the page window and the total count.
func applyFilter(tx *gorm.DB, p ListParams, columns map[string]string) (*gorm.DB, error) {
	if p.FilterBy != "" && p.FilterValue != "" {
		column, ok := columns[p.FilterBy]
		if !ok {
			return nil, fmt.Errorf("%w: cannot filter by %q", ErrInvalidField, p.FilterBy)
		}
		tx = tx.Where(column+" = ?", p.FilterValue)
	}
	if p.Query != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(p.Query)+"%")
	}
	return tx, nil
}

// orderClause resolves the sort field through the allowlist and renders the
// ORDER BY expression.
func orderClause(p ListParams, columns map[string]string) (string, error) {
	column, ok := columns[p.SortBy]
	if !ok {
		return "", fmt.Errorf("%w: cannot sort by %q", ErrInvalidField, p.SortBy)
	}
	direction := "DESC"
	if p.Order == OrderAsc {
		direction = "ASC"
	}
	return column + " " + direction, nil
}
