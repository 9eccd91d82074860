package handler

import (
	"encoding/json"
	"net/http"

	"github.com/petchan-dev/petchan/internal/domain"
	"github.com/petchan-dev/petchan/internal/utils"
)

// LogError accepts client-reported failures. The endpoint is lenient:
// arbitrary fields are dropped, only errorMessage is required.
func (h *Handler) LogError(w http.ResponseWriter, r *http.Request) {
	var entry domain.ErrorLogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}
	if entry.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "errorMessage is required"})
		return
	}

	if ip := utils.GetIP(r); ip != "" {
		entry.ClientIP = utils.HashSHA256(ip)
	}
	entry.UserAgent = r.UserAgent()

	logId := h.sink.Log(r.Context(), entry)
	if logId == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "failed to record error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "logId": logId})
}
