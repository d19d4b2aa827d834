package service

import (
	"context"
	"errors"

	commonerrors "github.com/mkalinin/tasklight/internal/common/errors"
	"github.com/mkalinin/tasklight/internal/common/logger"
	"github.com/mkalinin/tasklight/internal/observability/metrics"
	"github.com/mkalinin/tasklight/internal/todo/domain"
	todorepo "github.com/mkalinin/tasklight/internal/todo/repository"
)

type TodoService struct {
	todos todorepo.Repository
	log   *logger.Logger
}

func NewTodoService(todos todorepo.Repository, log *logger.Logger) *TodoService {
	return &TodoService{todos: todos, log: log}
}

func (s *TodoService) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	result, err := s.todos.ListByOwner(ctx, ownerID)
	if err != nil && !errors.Is(err, todorepo.ErrTodoNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"owner_id": ownerID,
			"action":   "todo_list_failed",
		}).Errorf("list todos failed: %v", err)
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}
	return result, nil
}

// Create accepts any text, including empty. The stored behavior is
// deliberately unvalidated; callers decide what text means.
func (s *TodoService) Create(ctx context.Context, ownerID, text string) (domain.Todo, error) {
	todo, err := s.todos.Create(ctx, ownerID, text)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"owner_id": ownerID,
			"action":   "todo_create_failed",
		}).Errorf("create todo failed: %v", err)
		return domain.Todo{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.TodosCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"owner_id": ownerID,
		"todo_id":  todo.ID,
		"action":   "todo_created",
	}).Info("todo created")

	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, ownerID, id string, patch todorepo.UpdatePatch) (domain.Todo, error) {
	todo, err := s.todos.Update(ctx, ownerID, id, patch)
	if err != nil {
		if errors.Is(err, todorepo.ErrTodoNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"owner_id": ownerID,
				"todo_id":  id,
				"action":   "todo_update_not_found",
			}).Warn("update todo failed: not found or unauthorized")
			return domain.Todo{}, ErrNotFoundOrUnauthorized
		}
		s.log.WithFields(ctx, logger.Fields{
			"owner_id": ownerID,
			"todo_id":  id,
			"action":   "todo_update_failed",
		}).Errorf("update todo failed: %v", err)
		return domain.Todo{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.TodosUpdatedTotal.Inc()
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	err := s.todos.Delete(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, todorepo.ErrTodoNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"owner_id": ownerID,
				"todo_id":  id,
				"action":   "todo_delete_not_found",
			}).Warn("delete todo failed: not found or unauthorized")
			return ErrNotFoundOrUnauthorized
		}
		s.log.WithFields(ctx, logger.Fields{
			"owner_id": ownerID,
			"todo_id":  id,
			"action":   "todo_delete_failed",
		}).Errorf("delete todo failed: %v", err)
		return commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.TodosDeletedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"owner_id": ownerID,
		"todo_id":  id,
		"action":   "todo_deleted",
	}).Info("todo deleted")

	return nil
}
