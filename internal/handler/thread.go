package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/petchan-dev/petchan/internal/domain"
	"github.com/petchan-dev/petchan/internal/utils"
	"github.com/petchan-dev/petchan/internal/validation"
)

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var cmd validation.CreateThread
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	result := h.thread.Create(r.Context(), cmd, clientFromRequest(r))
	writeSubmitResult(w, "thread", result, http.StatusCreated)
}

const (
	defaultListLimit = 20
	maxListLimit     = 50
)

// ListThreads serves the front page listing. The default page is
// cached under "/", which a successful thread creation invalidates.
func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	h.cachedThreadList(w, r, "/", "")
}

// ListCategoryThreads serves one category's listing, cached under
// "/category/{id}".
func (h *Handler) ListCategoryThreads(w http.ResponseWriter, r *http.Request) {
	categoryId := chi.URLParam(r, "category")
	if _, err := uuid.Parse(categoryId); err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}
	h.cachedThreadList(w, r, "/category/"+categoryId, categoryId)
}

func (h *Handler) cachedThreadList(w http.ResponseWriter, r *http.Request, cachePath string, categoryId domain.CategoryId) {
	// only the default page is cached; limit/offset queries go to storage
	cacheable := r.URL.RawQuery == ""
	if cacheable {
		if body, ok := h.pageCache.Get(cachePath); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	limit, offset := listParams(r)
	threads, err := h.thread.List(r.Context(), categoryId, limit, offset)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if threads == nil {
		threads = []domain.Thread{}
	}

	body, err := json.Marshal(threads)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if cacheable {
		h.pageCache.Set(cachePath, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func listParams(r *http.Request) (limit, offset int) {
	limit = defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxListLimit {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "thread")
	if _, err := uuid.Parse(threadId); err != nil {
		http.Error(w, "invalid thread ID", http.StatusBadRequest)
		return
	}

	// cache key matches what a successful response submission invalidates
	cachePath := "/thread/" + threadId
	if body, ok := h.pageCache.Get(cachePath); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	page, err := h.thread.Get(r.Context(), threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	body, err := json.Marshal(page)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.pageCache.Set(cachePath, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
