package http

import (
	"net/http"

	"github.com/MKhiriev/eagle-pass/internal/app"
	"github.com/MKhiriev/eagle-pass/internal/utils"
	"github.com/MKhiriev/eagle-pass/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) enableTwoFactor(w http.ResponseWriter, r *http.Request) {
	otpauthURL, err := h.services.TwoFactorService.Enable(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error enabling 2FA")
		return
	}

	utils.WriteJSON(w, models.EnableTwoFactorResponse{Message: app.MsgTwoFactorEnabled, OTPAuthURL: otpauthURL}, http.StatusOK)
}

func (h *Handler) verifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyTwoFactorRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeMessage(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" || req.Code == "" {
		writeMessage(w, app.MsgCodeRequired, http.StatusBadRequest)
		return
	}

	if err := h.services.TwoFactorService.Verify(r.Context(), id, req.Code); err != nil {
		writeError(w, r, err, "error verifying 2FA code")
		return
	}

	writeMessage(w, app.MsgTwoFactorVerified, http.StatusOK)
}

func (h *Handler) disableTwoFactor(w http.ResponseWriter, r *http.Request) {
	if err := h.services.TwoFactorService.Disable(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "error disabling 2FA")
		return
	}

	writeMessage(w, app.MsgTwoFactorDisabled, http.StatusOK)
}
