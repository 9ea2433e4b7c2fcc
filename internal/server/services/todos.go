package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/repomanager"
)

type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	logger      logging.Logger
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *TodoService {
	return &TodoService{db: db, repomanager: m, now: time.Now, logger: logger.With("module", "todos")}
}

func (s *TodoService) WithClock(now func() time.Time) *TodoService {
	s.now = now
	return s
}

func (s *TodoService) List(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	return s.repomanager.Todos(s.db).ListByOwner(ctx, ownerID)
}

func (s *TodoService) Get(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	return s.repomanager.Todos(s.db).Get(ctx, id, ownerID)
}

// Create stores a new todo for ownerID. ID, owner and timestamps in t are
// overwritten.
func (s *TodoService) Create(ctx context.Context, ownerID string, t *models.Todo) (*models.Todo, error) {
	todo := &models.Todo{
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(t.Title),
		Completed: t.Completed,
	}
	if todo.Completed {
		at := s.now()
		todo.CompletedAt = &at
	}
	if err := todo.Validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Todos(s.db).Create(ctx, todo)
}

func (s *TodoService) Update(ctx context.Context, ownerID, id string, p models.TodoPatch) (*models.Todo, error) {
	todo, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	todo.Apply(p, s.now())
	if err := todo.Validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Todos(s.db).Update(ctx, todo)
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return common.ErrNotFound
	}
	return s.repomanager.Todos(s.db).Delete(ctx, id, ownerID)
}
