package handlers

import (
	"net/http"

	"github.com/TWRT/ops-dashboard/internal/service"
)

const SessionCookie = "session_id"

type LoginRequestBody struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var reqBody LoginRequestBody
	if err := decodeBody(r, loginBody, &reqBody); err != nil {
		writeError(w, "login", err)
		return
	}

	session, err := h.authService.Login(reqBody.Identifier, reqBody.Password)
	if err != nil {
		writeError(w, "login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": session.ID,
		"session":    h.authService.Info(session),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := service.SessionFromContext(r.Context())
	if session == nil {
		writeError(w, "logout", service.ErrUnauthenticated)
		return
	}
	if err := h.authService.Logout(session.ID); err != nil {
		writeError(w, "logout", err)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged out",
	})
}

func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.authService.Info(service.SessionFromContext(r.Context())))
}
