package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petchan-dev/petchan/internal/domain"
	internal_errors "github.com/petchan-dev/petchan/internal/errors"
)

func TestGetCategoriesHandler(t *testing.T) {
	t.Run("lists main categories", func(t *testing.T) {
		f := newFixture(t)
		f.categories.MainFunc = func() ([]domain.Category, error) {
			return []domain.Category{{Id: testCategoryId, Name: "犬", Type: "main"}}, nil
		}

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/categories", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "犬")
	})

	t.Run("empty list instead of null", func(t *testing.T) {
		f := newFixture(t)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/categories", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		f := newFixture(t)

		f.do(httptest.NewRequest(http.MethodGet, "/v1/categories", nil))
		f.do(httptest.NewRequest(http.MethodGet, "/v1/categories", nil))

		assert.Equal(t, 1, f.categories.mainCalls)
	})

	t.Run("all=true returns the flat list", func(t *testing.T) {
		f := newFixture(t)
		f.categories.AllFunc = func() ([]domain.Category, error) {
			return []domain.Category{
				{Id: testCategoryId, Name: "犬", Type: "main"},
				{Id: testSubCategoryId, Name: "しつけ", Type: "sub"},
			}, nil
		}

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/categories?all=true", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "しつけ")
		assert.Equal(t, 0, f.categories.mainCalls)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)
		f.categories.MainFunc = func() ([]domain.Category, error) {
			return nil, &internal_errors.DatabaseError{Op: "get_categories", Err: errors.New("gone")}
		}

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/categories", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetSubCategoriesHandler(t *testing.T) {
	t.Run("invalid parent id", func(t *testing.T) {
		f := newFixture(t)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/categories/nope/sub", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("lists children of the parent", func(t *testing.T) {
		f := newFixture(t)
		f.categories.SubFunc = func(parentId domain.CategoryId) ([]domain.Category, error) {
			assert.Equal(t, testCategoryId, parentId)
			return []domain.Category{{Id: testSubCategoryId, Name: "しつけ", Type: "sub"}}, nil
		}

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/categories/"+testCategoryId+"/sub", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "しつけ")
	})
}
