package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/todos"
)

type TodoRepository struct {
	s *Store
}

var _ todos.Repository = (*TodoRepository)(nil)

func cloneTodo(t models.Todo) *models.Todo {
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		t.CompletedAt = &at
	}
	return &t
}

func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, seq := r.s.nextID()
	now := r.s.now()
	todo.ID = id
	todo.CreatedAt = now
	todo.UpdatedAt = now
	r.s.todos[id] = row[models.Todo]{seq: seq, v: *cloneTodo(*todo)}
	return todo, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]row[models.Todo], 0)
	for _, rw := range r.s.todos {
		if rw.v.OwnerID == ownerID {
			rows = append(rows, rw)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].v.CreatedAt.Equal(rows[j].v.CreatedAt) {
			return rows[i].v.CreatedAt.After(rows[j].v.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]*models.Todo, 0, len(rows))
	for _, rw := range rows {
		out = append(out, cloneTodo(rw.v))
	}
	return out, nil
}

func (r *TodoRepository) Get(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.s.todos[id]
	if !ok || rw.v.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	return cloneTodo(rw.v), nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.s.todos[todo.ID]
	if !ok || rw.v.OwnerID != todo.OwnerID {
		return nil, common.ErrNotFound
	}
	todo.CreatedAt = rw.v.CreatedAt
	todo.UpdatedAt = r.s.now()
	rw.v = *cloneTodo(*todo)
	r.s.todos[todo.ID] = rw
	return todo, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.s.todos[id]
	if !ok || rw.v.OwnerID != ownerID {
		return common.ErrNotFound
	}
	delete(r.s.todos, id)
	return nil
}
