package pg

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"

	"github.com/petchan-dev/petchan/internal/domain"
	internal_errors "github.com/petchan-dev/petchan/internal/errors"
)

// tooFrequentSQLState is the SQLSTATE the create procedures raise for
// the per-client cadence violation (one post per 60 seconds). Matching
// on the code keeps the caller independent of the error text.
const tooFrequentSQLState = "PT001"

// legacyTooFrequentMarker covers procedure versions that predate the
// custom SQLSTATE and only carry the Japanese message.
const legacyTooFrequentMarker = "連続投稿"

// CreateThread calls the create_thread procedure. The procedure is
// atomic: the cadence check and the insert happen in one statement,
// so concurrent submissions from the same client cannot both pass.
func (s *Storage) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Created, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT create_thread($1, $2, $3, $4, $5, $6)`,
		data.Title, data.Content, data.CategoryId, data.SubCategoryId,
		pq.StringArray(data.ImageUrls), nullString(data.ClientIP),
	).Scan(&id)
	if err != nil {
		return domain.Created{}, mapPostingError("create_thread", err)
	}

	return domain.Created{Id: id}, nil
}

const threadColumns = `
	id,
	title,
	content,
	category_id,
	sub_category_id,
	image_urls,
	created_at,
	updated_at,
	response_count,
	last_response_at`

// GetThreads returns recent threads across all categories, most
// recently active first.
func (s *Storage) GetThreads(ctx context.Context, limit, offset int) ([]domain.Thread, error) {
	return s.queryThreads(ctx, `
	SELECT `+threadColumns+`
	FROM threads
	ORDER BY COALESCE(last_response_at, created_at) DESC
	LIMIT $1 OFFSET $2`, limit, offset)
}

// GetThreadsByCategory scopes the listing to one main category.
func (s *Storage) GetThreadsByCategory(ctx context.Context, categoryId domain.CategoryId, limit, offset int) ([]domain.Thread, error) {
	return s.queryThreads(ctx, `
	SELECT `+threadColumns+`
	FROM threads
	WHERE category_id = $1
	ORDER BY COALESCE(last_response_at, created_at) DESC
	LIMIT $2 OFFSET $3`, categoryId, limit, offset)
}

func (s *Storage) queryThreads(ctx context.Context, query string, args ...any) ([]domain.Thread, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &internal_errors.DatabaseError{Op: "get_threads", Err: err}
	}
	defer rows.Close()

	var threads []domain.Thread
	for rows.Next() {
		var t domain.Thread
		if err := rows.Scan(
			&t.Id, &t.Title, &t.Content, &t.CategoryId, &t.SubCategoryId,
			&t.ImageUrls, &t.CreatedAt, &t.UpdatedAt, &t.ResponseCount, &t.LastResponseAt); err != nil {
			return nil, &internal_errors.DatabaseError{Op: "get_threads", Err: err}
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &internal_errors.DatabaseError{Op: "get_threads", Err: err}
	}
	return threads, nil
}

// GetThread returns the thread and its responses in insertion order.
func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, []domain.Response, error) {
	var t domain.Thread
	err := s.db.QueryRowContext(ctx, `
	SELECT
		id,
		title,
		content,
		category_id,
		sub_category_id,
		image_urls,
		created_at,
		updated_at,
		response_count,
		last_response_at
	FROM threads
	WHERE id = $1`, id).Scan(
		&t.Id, &t.Title, &t.Content, &t.CategoryId, &t.SubCategoryId,
		&t.ImageUrls, &t.CreatedAt, &t.UpdatedAt, &t.ResponseCount, &t.LastResponseAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Thread{}, nil, &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: 404}
		}
		return domain.Thread{}, nil, &internal_errors.DatabaseError{Op: "get_thread", Err: err}
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT
		id,
		thread_id,
		content,
		image_urls,
		anchor_to,
		created_at
	FROM responses
	WHERE thread_id = $1
	ORDER BY created_at ASC`, id)
	if err != nil {
		return domain.Thread{}, nil, &internal_errors.DatabaseError{Op: "get_thread_responses", Err: err}
	}
	defer rows.Close()

	var responses []domain.Response
	for rows.Next() {
		var r domain.Response
		if err := rows.Scan(&r.Id, &r.ThreadId, &r.Content, &r.ImageUrls, &r.AnchorTo, &r.CreatedAt); err != nil {
			return domain.Thread{}, nil, &internal_errors.DatabaseError{Op: "get_thread_responses", Err: err}
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return domain.Thread{}, nil, &internal_errors.DatabaseError{Op: "get_thread_responses", Err: err}
	}

	return t, responses, nil
}

// mapPostingError translates persistence failures into the error
// taxonomy. The cadence violation is recognized by SQLSTATE first,
// message marker second.
func mapPostingError(op string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		if string(pqErr.Code) == tooFrequentSQLState || strings.Contains(pqErr.Message, legacyTooFrequentMarker) {
			return internal_errors.ErrTooFrequentPosting
		}
	}
	return &internal_errors.DatabaseError{Op: op, Err: err}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
