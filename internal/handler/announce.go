package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petchan-dev/petchan/internal/domain"
)

func (h *Handler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	if !h.announcements.Configured() {
		writeJSON(w, http.StatusOK, map[string]any{"contents": []domain.Announcement{}})
		return
	}

	contents, err := h.announcements.List(r.Context())
	if err != nil {
		http.Error(w, "content service unavailable", http.StatusBadGateway)
		return
	}
	if contents == nil {
		contents = []domain.Announcement{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"contents": contents})
}

func (h *Handler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	if !h.announcements.Configured() {
		http.Error(w, "Announcement not found", http.StatusNotFound)
		return
	}

	announcement, err := h.announcements.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "content service unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, announcement)
}
