package http

import (
	"net/http"

	"github.com/MKhiriev/eagle-pass/internal/utils"
	"github.com/MKhiriev/eagle-pass/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(serverVersion))
}

// getStatus answers 503 while the storage backend is unreachable.
func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	if err := h.services.StatusService.Check(r.Context()); err != nil {
		writeError(w, r, err, "status check failed")
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}
