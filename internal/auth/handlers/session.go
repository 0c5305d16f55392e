package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"imperium-server/internal/auth"
	"imperium-server/internal/shared/config"
	"imperium-server/internal/shared/cookies"
	"imperium-server/internal/shared/errors"
	"imperium-server/internal/shared/response"
)

// SessionHandler exchanges the table's access code for a session cookie.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

type loginRequest struct {
	AccessCode string `json:"accessCode"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "session_login")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	if !config.GlobalConfig.AuthEnabled() {
		response.Error(w, r, logger, errors.NotFoundf("access control is not enabled"))
		return
	}

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid login payload", err))
		return
	}

	if !auth.VerifyAccessCode(payload.AccessCode) {
		response.Error(w, r, logger, errors.Unauthorized("invalid access code"))
		return
	}

	token, err := auth.GenerateToken()
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to generate session token", err))
		return
	}

	cookies.SetSessionCookie(w, token)
	response.Success(w, http.StatusOK, map[string]bool{"authenticated": true})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "session_logout")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	cookies.ClearSessionCookie(w)
	response.Success(w, http.StatusOK, map[string]bool{"authenticated": false})
}
