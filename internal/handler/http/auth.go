package http

import (
	"net/http"

	"github.com/MKhiriev/eagle-pass/internal/app"
	"github.com/MKhiriev/eagle-pass/internal/logger"
)

// login sends the browser to the Discord consent page.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.services.AuthService.LoginURL(), http.StatusTemporaryRedirect)
}

// callback finishes the OAuth flow and hands the JWT to the frontend through
// a redirect. Errors are plain text since the browser shows them directly.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	query := r.URL.Query()

	if query.Get("error") == "access_denied" {
		description := query.Get("error_description")
		log.Warn().Str("description", description).Msg("user denied access")
		http.Error(w, app.MsgAccessDeniedPrefix+description, http.StatusForbidden)
		return
	}

	code := query.Get("code")
	if code == "" {
		log.Warn().Msg("callback without code")
		http.Error(w, app.MsgNoCodeReceived, http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.HandleCallback(r.Context(), code)
	if err != nil {
		status, message := lookupError(err)
		log.Err(err).Int("status", status).Msg("oauth callback failed")
		http.Error(w, message, status)
		return
	}

	http.Redirect(w, r, h.services.AuthService.ClientRedirectURL(token), http.StatusFound)
}
