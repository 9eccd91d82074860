package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/petchan-dev/petchan/internal/domain"
	"github.com/petchan-dev/petchan/internal/utils"
)

// GetCategories lists main categories; ?all=true includes
// subcategories in one flat list for form initialization.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		h.cachedCategories(w, r, "/categories?all", func() ([]domain.Category, error) {
			return h.categories.GetCategories(r.Context())
		})
		return
	}
	h.cachedCategories(w, r, "/categories", func() ([]domain.Category, error) {
		return h.categories.GetMainCategories(r.Context())
	})
}

func (h *Handler) GetSubCategories(w http.ResponseWriter, r *http.Request) {
	categoryId := chi.URLParam(r, "category")
	if _, err := uuid.Parse(categoryId); err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	h.cachedCategories(w, r, "/categories/"+categoryId+"/sub", func() ([]domain.Category, error) {
		return h.categories.GetSubCategories(r.Context(), categoryId)
	})
}

// cachedCategories serves from the page cache when possible. Category
// listings only change on deploy, so TTL expiry is the sole
// invalidation.
func (h *Handler) cachedCategories(w http.ResponseWriter, r *http.Request, cachePath string, fetch func() ([]domain.Category, error)) {
	if body, ok := h.pageCache.Get(cachePath); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	categories, err := fetch()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	body, err := json.Marshal(categories)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.pageCache.Set(cachePath, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
