package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/finplanner/internal/dbx"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/memory"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/notes"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/records"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/todos"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/users"
)

// MemoryRepositoryManager serves every repository from one in-process
// store. The db handle is ignored.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager(store *memory.Store) *MemoryRepositoryManager {
	if store == nil {
		store = memory.NewStore()
	}
	return &MemoryRepositoryManager{store: store}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository     { return m.store.Users() }
func (m *MemoryRepositoryManager) Todos(dbx.DBTX) todos.Repository     { return m.store.Todos() }
func (m *MemoryRepositoryManager) Notes(dbx.DBTX) notes.Repository     { return m.store.Notes() }
func (m *MemoryRepositoryManager) Records(dbx.DBTX) records.Repository { return m.store.Records() }
