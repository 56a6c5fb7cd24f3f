package http

import (
	"errors"
	"net/http"

	"github.com/dlriva/proposalforge/internal/domain/user"
	"github.com/dlriva/proposalforge/internal/middleware"
	"github.com/dlriva/proposalforge/internal/service"
)

// Register handles POST /api/v1/auth/register
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.CreateRequest](w, r)
	if !ok {
		return
	}
	u, err := h.Auth.Register(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Login handles POST /api/v1/auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.LoginRequest](w, r)
	if !ok {
		return
	}
	resp, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeDomainError(w, err, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// CurrentUser handles GET /api/v1/auth/me
func (h *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	authed := middleware.UserFromContext(r.Context())
	if authed == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	u, err := h.Auth.GetUser(r.Context(), authed.ID)
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
