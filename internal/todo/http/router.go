package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	commonhttp "github.com/mkalinin/tasklight/internal/common/http"
	"github.com/mkalinin/tasklight/internal/common/jwtverify"
	"github.com/mkalinin/tasklight/internal/common/logger"
	"github.com/mkalinin/tasklight/internal/todo/domain"
	todorepo "github.com/mkalinin/tasklight/internal/todo/repository"
	"github.com/mkalinin/tasklight/internal/todo/service"
)

type createRequest struct {
	Text string `json:"text"`
}

type updateRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type todoResponse struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Handler struct {
	todos   *service.TodoService
	timeout time.Duration
	log     *logger.Logger
}

func NewHandler(todos *service.TodoService, requestTimeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{todos: todos, timeout: requestTimeout, log: log}
}

// Register mounts the owner-scoped todo endpoints. The caller wires
// the auth gate around this group; handlers only read the resolved
// identity from the request context.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/todos", h.list)
	r.Post("/api/todos", h.create)
	r.Put("/api/todos/{id}", h.update)
	r.Delete("/api/todos/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, commonhttp.CodeUnauthenticated, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	todos, err := h.todos.List(ctx, claims.UserID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toResponses(todos))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, commonhttp.CodeUnauthenticated, "unauthorized")
		return
	}

	var req createRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create todo failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	todo, err := h.todos.Create(ctx, claims.UserID, req.Text)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toResponse(todo))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, commonhttp.CodeUnauthenticated, "unauthorized")
		return
	}

	var req updateRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update todo failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	if req.Text == nil && req.Completed == nil {
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidInput, "nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	todo, err := h.todos.Update(ctx, claims.UserID, chi.URLParam(r, "id"), todorepo.UpdatePatch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toResponse(todo))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, commonhttp.CodeUnauthenticated, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.todos.Delete(ctx, claims.UserID, chi.URLParam(r, "id")); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, commonhttp.MessageResponse{Message: "todo deleted"})
}

func toResponse(t domain.Todo) todoResponse {
	return todoResponse{
		ID:        t.ID,
		Owner:     t.OwnerID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toResponses(todos []domain.Todo) []todoResponse {
	result := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		result = append(result, toResponse(t))
	}
	return result
}
