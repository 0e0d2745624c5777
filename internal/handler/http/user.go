package http

import (
	"net/http"

	"github.com/MKhiriev/eagle-pass/internal/app"
	"github.com/MKhiriev/eagle-pass/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getUserByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error getting user by id")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.GetUserByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err, "error getting user by username")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.services.UserService.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "error deleting user")
		return
	}

	writeMessage(w, app.MsgUserDeleted, http.StatusOK)
}
