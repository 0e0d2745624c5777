package http

import (
	"net/http"

	"github.com/MKhiriev/eagle-pass/internal/app"
	"github.com/MKhiriev/eagle-pass/internal/utils"
	"github.com/MKhiriev/eagle-pass/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getPasswords(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext, "getPasswords")
		return
	}

	entries, err := h.services.PasswordService.GetPasswords(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "error getting passwords")
		return
	}
	if entries == nil {
		entries = []models.PasswordEntry{}
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) addPassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext, "addPassword")
		return
	}

	var req models.AddPasswordRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeMessage(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	entry, err := h.services.PasswordService.AddPassword(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err, "error adding password")
		return
	}

	utils.WriteJSON(w, models.AddPasswordResponse{Message: app.MsgPasswordAdded, Password: entry}, http.StatusCreated)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext, "updatePassword")
		return
	}

	var update models.PasswordUpdate
	if err := utils.DecodeJSON(w, r, &update); err != nil {
		writeMessage(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	err := h.services.PasswordService.UpdatePassword(r.Context(), userID, chi.URLParam(r, "passwordID"), update)
	if err != nil {
		writeError(w, r, err, "error updating password")
		return
	}

	writeMessage(w, app.MsgPasswordUpdated, http.StatusOK)
}

func (h *Handler) deletePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext, "deletePassword")
		return
	}

	if err := h.services.PasswordService.DeletePassword(r.Context(), userID, chi.URLParam(r, "passwordID")); err != nil {
		writeError(w, r, err, "error deleting password")
		return
	}

	writeMessage(w, app.MsgPasswordDeleted, http.StatusOK)
}
