package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkalinin/tasklight/internal/auth/service"
	commonhttp "github.com/mkalinin/tasklight/internal/common/http"
	"github.com/mkalinin/tasklight/internal/common/logger"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	auth    *service.AuthService
	timeout time.Duration
	log     *logger.Logger
}

func NewHandler(auth *service.AuthService, requestTimeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{auth: auth, timeout: requestTimeout, log: log}
}

// Register mounts the public auth endpoints. They sit outside the auth
// gate: everything else under /api requires a bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/signup", h.signup)
	r.Post("/api/login", h.login)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("signup failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	_, err := h.auth.Signup(ctx, service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, commonhttp.MessageResponse{Message: "account created"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Login(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: result.Token})
}
