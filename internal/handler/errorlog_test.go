package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogErrorHandler(t *testing.T) {
	t.Run("records the reported failure", func(t *testing.T) {
		f := newFixture(t)

		rr := postJSON(f, "/v1/log-error", []byte(`{
			"errorMessage": "TypeError: Cannot read properties of undefined",
			"errorStack": "at ThreadForm.submit",
			"userAction": "create_thread",
			"severity": "error"
		}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"logId":"log-42"}`, rr.Body.String())

		require.Len(t, f.writer.entries, 1)
		entry := f.writer.entries[0]
		assert.Equal(t, "TypeError: Cannot read properties of undefined", entry.Message)
		assert.Equal(t, "create_thread", entry.UserAction)
		assert.NotEqual(t, "203.0.113.7", entry.ClientIP, "raw address must not be stored")
	})

	t.Run("message is required", func(t *testing.T) {
		f := newFixture(t)

		rr := postJSON(f, "/v1/log-error", []byte(`{"severity":"error"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"errorMessage is required"}`, rr.Body.String())
		assert.Empty(t, f.writer.entries)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		f := newFixture(t)

		rr := postJSON(f, "/v1/log-error", []byte("{"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("write failure answers 500", func(t *testing.T) {
		f := newFixture(t)
		f.writer.err = errors.New("log table unavailable")

		rr := postJSON(f, "/v1/log-error", []byte(`{"errorMessage":"boom"}`))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
