package pg

import (
	"context"

	"github.com/petchan-dev/petchan/internal/domain"
	internal_errors "github.com/petchan-dev/petchan/internal/errors"
)

// Categories are read-only from the pipeline's perspective.

func (s *Storage) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return s.queryCategories(ctx, `
	SELECT id, name, type, parent_id, display_order
	FROM categories
	ORDER BY display_order ASC`)
}

func (s *Storage) GetMainCategories(ctx context.Context) ([]domain.Category, error) {
	return s.queryCategories(ctx, `
	SELECT id, name, type, parent_id, display_order
	FROM categories
	WHERE type = 'main'
	ORDER BY display_order ASC`)
}

func (s *Storage) GetSubCategories(ctx context.Context, parentId domain.CategoryId) ([]domain.Category, error) {
	return s.queryCategories(ctx, `
	SELECT id, name, type, parent_id, display_order
	FROM categories
	WHERE type = 'sub' AND parent_id = $1
	ORDER BY display_order ASC`, parentId)
}

func (s *Storage) queryCategories(ctx context.Context, query string, args ...any) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &internal_errors.DatabaseError{Op: "get_categories", Err: err}
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Id, &c.Name, &c.Type, &c.ParentId, &c.DisplayOrder); err != nil {
			return nil, &internal_errors.DatabaseError{Op: "get_categories", Err: err}
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &internal_errors.DatabaseError{Op: "get_categories", Err: err}
	}
	return categories, nil
}
