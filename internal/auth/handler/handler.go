package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"licibit/internal/auth/service"
	id "licibit/pkg/domain"
	dErrors "licibit/pkg/domain-errors"
	"licibit/pkg/platform/httputil"
	"licibit/pkg/requestcontext"
)

// Handler wires the auth endpoints to the auth service.
type Handler struct {
	auth   *service.Service
	logger *slog.Logger
}

func New(auth *service.Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the auth endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
	Role        string `json:"role"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req registerRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.auth.Register(ctx, req.Email, req.Password, req.CompanyName, id.Role(req.Role))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"role", user.Role,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"id":    user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req loginRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	token, user, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     service.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"role":  user.Role,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := ""
	if cookie, err := r.Cookie(service.SessionCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "no session to close"))
		return
	}
	if err := h.auth.Logout(ctx, token); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "logout failed"))
		return
	}
	http.SetCookie(w, &http.Cookie{Name: service.SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}
