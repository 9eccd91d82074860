package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petchan-dev/petchan/internal/validation"
)

func (h *Handler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	var cmd validation.CreateResponse
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	// the path is authoritative for the target thread
	cmd.ThreadId = chi.URLParam(r, "thread")

	result := h.response.Create(r.Context(), cmd, clientFromRequest(r))
	writeSubmitResult(w, "response", result, http.StatusCreated)
}
