package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/petchan-dev/petchan/internal/announce"
	"github.com/petchan-dev/petchan/internal/cache"
	"github.com/petchan-dev/petchan/internal/domain"
	"github.com/petchan-dev/petchan/internal/errlog"
	internal_errors "github.com/petchan-dev/petchan/internal/errors"
	"github.com/petchan-dev/petchan/internal/middleware/metrics"
	"github.com/petchan-dev/petchan/internal/service"
	"github.com/petchan-dev/petchan/internal/utils"
)

// CategoryReader is the read-only category lookup the handlers need.
type CategoryReader interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetMainCategories(ctx context.Context) ([]domain.Category, error)
	GetSubCategories(ctx context.Context, parentId domain.CategoryId) ([]domain.Category, error)
}

// Pinger reports persistence availability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	thread        *service.Thread
	response      *service.Response
	upload        *service.Upload
	categories    CategoryReader
	announcements *announce.Client
	pageCache     *cache.PageCache
	sink          *errlog.Sink
	db            Pinger
}

func New(thread *service.Thread, response *service.Response, upload *service.Upload, categories CategoryReader, announcements *announce.Client, pageCache *cache.PageCache, sink *errlog.Sink, db Pinger) *Handler {
	return &Handler{thread, response, upload, categories, announcements, pageCache, sink, db}
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeSubmitResult maps the outcome taxonomy onto HTTP statuses. The
// body is the result envelope itself; both throttles answer 429 with
// their respective messages.
func writeSubmitResult(w http.ResponseWriter, action string, result service.SubmitResult, createdStatus int) {
	outcome := "success"
	if !result.Success {
		outcome = string(result.Kind)
	}
	metrics.ObserveSubmission(action, outcome)

	status := createdStatus
	if !result.Success {
		switch result.Kind {
		case internal_errors.KindValidation:
			status = http.StatusBadRequest
		case internal_errors.KindRateLimit, internal_errors.KindTooFrequent:
			status = http.StatusTooManyRequests
		default:
			status = http.StatusInternalServerError
		}
	}
	writeJSON(w, status, result)
}

func clientFromRequest(r *http.Request) domain.Client {
	return domain.Client{
		IP:        utils.GetIP(r),
		UserAgent: r.UserAgent(),
	}
}
