package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petchan-dev/petchan/internal/domain"
	internal_errors "github.com/petchan-dev/petchan/internal/errors"
	"github.com/petchan-dev/petchan/internal/ratelimit"
	"github.com/petchan-dev/petchan/internal/service"
)

func threadBody() []byte {
	return []byte(fmt.Sprintf(
		`{"title":"子犬のしつけ","content":"相談です","categoryId":%q,"subCategoryId":%q}`,
		testCategoryId, testSubCategoryId,
	))
}

func postJSON(f *fixture, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:51234"
	return f.do(req)
}

func decodeResult(t *testing.T, rr *httptest.ResponseRecorder) service.SubmitResult {
	t.Helper()
	var result service.SubmitResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	return result
}

func TestCreateThreadHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture(t)

		rr := postJSON(f, "/v1/threads", threadBody())

		assert.Equal(t, http.StatusCreated, rr.Code)
		result := decodeResult(t, rr)
		assert.True(t, result.Success)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		f := newFixture(t)

		rr := postJSON(f, "/v1/threads", []byte("{not json"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 0, f.threads.createCalls)
	})

	t.Run("validation failure", func(t *testing.T) {
		f := newFixture(t)

		rr := postJSON(f, "/v1/threads", []byte(`{"title":"","content":"x","categoryId":"`+testCategoryId+`","subCategoryId":"`+testSubCategoryId+`"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		result := decodeResult(t, rr)
		assert.False(t, result.Success)
		assert.Equal(t, "タイトルを入力してください", result.Error)
		assert.Equal(t, 0, f.threads.createCalls)
	})

	t.Run("rate limited", func(t *testing.T) {
		f := newFixture(t)
		f.limiter = ratelimit.NewSlidingWindow(0, 0) // zero capacity rejects everything
		f.build()

		rr := postJSON(f, "/v1/threads", threadBody())

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		result := decodeResult(t, rr)
		assert.Equal(t, service.MsgRateLimited, result.Error)
	})

	t.Run("cadence violation", func(t *testing.T) {
		f := newFixture(t)
		f.threads.CreateFunc = func(domain.ThreadCreationData) (domain.Created, error) {
			return domain.Created{}, internal_errors.ErrTooFrequentPosting
		}

		rr := postJSON(f, "/v1/threads", threadBody())

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		result := decodeResult(t, rr)
		assert.Equal(t, service.MsgTooFrequent, result.Error)
	})

	t.Run("persistence failure", func(t *testing.T) {
		f := newFixture(t)
		f.threads.CreateFunc = func(domain.ThreadCreationData) (domain.Created, error) {
			return domain.Created{}, &internal_errors.DatabaseError{Op: "create_thread", Err: errors.New("boom")}
		}

		rr := postJSON(f, "/v1/threads", threadBody())

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		result := decodeResult(t, rr)
		assert.Equal(t, service.MsgThreadFailed, result.Error)
	})
}

func TestListThreadsHandler(t *testing.T) {
	t.Run("lists recent threads", func(t *testing.T) {
		f := newFixture(t)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/threads", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "子犬のしつけ")
		assert.NotContains(t, rr.Body.String(), "UserIP")
	})

	t.Run("empty list instead of null", func(t *testing.T) {
		f := newFixture(t)
		f.threads.ListFunc = func(int, int) ([]domain.Thread, error) {
			return nil, nil
		}

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/threads", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("default page is served from cache", func(t *testing.T) {
		f := newFixture(t)

		f.do(httptest.NewRequest(http.MethodGet, "/v1/threads", nil))
		f.do(httptest.NewRequest(http.MethodGet, "/v1/threads", nil))

		assert.Equal(t, 1, f.threads.listCalls)
	})

	t.Run("paginated requests bypass the cache", func(t *testing.T) {
		f := newFixture(t)
		f.threads.ListFunc = func(limit, offset int) ([]domain.Thread, error) {
			assert.Equal(t, 10, limit)
			assert.Equal(t, 20, offset)
			return nil, nil
		}

		f.do(httptest.NewRequest(http.MethodGet, "/v1/threads?limit=10&offset=20", nil))
		f.do(httptest.NewRequest(http.MethodGet, "/v1/threads?limit=10&offset=20", nil))

		assert.Equal(t, 2, f.threads.listCalls)
	})

	t.Run("creating a thread drops the cached listings", func(t *testing.T) {
		f := newFixture(t)

		f.do(httptest.NewRequest(http.MethodGet, "/v1/threads", nil))
		f.do(httptest.NewRequest(http.MethodGet, "/v1/categories/"+testCategoryId+"/threads", nil))
		require.Equal(t, 2, f.threads.listCalls)

		rr := postJSON(f, "/v1/threads", threadBody())
		require.Equal(t, http.StatusCreated, rr.Code)

		f.do(httptest.NewRequest(http.MethodGet, "/v1/threads", nil))
		f.do(httptest.NewRequest(http.MethodGet, "/v1/categories/"+testCategoryId+"/threads", nil))
		assert.Equal(t, 4, f.threads.listCalls, "both listings must be re-fetched after a new thread")
	})
}

func TestListCategoryThreadsHandler(t *testing.T) {
	t.Run("invalid category id", func(t *testing.T) {
		f := newFixture(t)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/categories/nope/threads", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("scopes the query to the category", func(t *testing.T) {
		f := newFixture(t)
		f.threads.ListCatFunc = func(categoryId domain.CategoryId, limit, offset int) ([]domain.Thread, error) {
			assert.Equal(t, testCategoryId, categoryId)
			return []domain.Thread{{Id: testThreadId, CategoryId: categoryId}}, nil
		}

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/categories/"+testCategoryId+"/threads", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), testCategoryId)
	})
}

func TestGetThreadHandler(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		f := newFixture(t)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/threads/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.threads.GetFunc = func(domain.ThreadId) (domain.Thread, []domain.Response, error) {
			return domain.Thread{}, nil, &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: 404}
		}

		rr := f.do(httptest.NewRequest(http.MethodGet, "/v1/threads/"+testThreadId, nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		f := newFixture(t)

		first := f.do(httptest.NewRequest(http.MethodGet, "/v1/threads/"+testThreadId, nil))
		second := f.do(httptest.NewRequest(http.MethodGet, "/v1/threads/"+testThreadId, nil))

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, 1, f.threads.getCalls)
	})

	t.Run("posting a response drops the cached page", func(t *testing.T) {
		f := newFixture(t)

		f.do(httptest.NewRequest(http.MethodGet, "/v1/threads/"+testThreadId, nil))
		rr := postJSON(f, "/v1/threads/"+testThreadId+"/responses", []byte(`{"content":"返信です"}`))
		require.Equal(t, http.StatusCreated, rr.Code)

		f.do(httptest.NewRequest(http.MethodGet, "/v1/threads/"+testThreadId, nil))
		assert.Equal(t, 2, f.threads.getCalls)
	})
}
