// Package repomanager vends repositories bound to a database handle, so
// services can run the same code against a pool or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/finplanner/internal/dbx"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/notes"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/records"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/todos"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
	Notes(db dbx.DBTX) notes.Repository
	Records(db dbx.DBTX) records.Repository
}
