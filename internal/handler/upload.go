package handler

import (
	"net/http"

	internal_errors "github.com/petchan-dev/petchan/internal/errors"
	"github.com/petchan-dev/petchan/internal/utils"
)

// uploads are parsed to disk above this threshold
const maxUploadMemory = 8 << 20

func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if h.upload == nil {
		http.Error(w, "image uploads are disabled", http.StatusServiceUnavailable)
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "画像が選択されていません"})
		return
	}

	urls, err := h.upload.Store(r.Context(), "images", files, clientFromRequest(r))
	if err != nil {
		if internal_errors.Is[*internal_errors.ValidationError](err) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
			return
		}
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "urls": urls})
}
