package notes

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

var noteCols = []string{"id", "user_id", "title", "content", "created_at", "updated_at"}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+notes\s*\(user_id,\s*title,\s*content\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at$`).
		WithArgs("owner-1", "ideas", "write more tests").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("n-1", now, now))

	got, err := repo.Create(context.Background(), &models.Note{OwnerID: "owner-1", Title: "ideas", Content: "write more tests"})
	require.NoError(t, err)
	assert.Equal(t, "n-1", got.ID)
}

func TestListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)FROM\s+notes\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC$`).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows(noteCols).AddRow("n-1", "owner-1", "ideas", "", now, now))

	got, err := repo.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ideas", got[0].Title)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+notes\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`).
		WithArgs("n-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "n-1", "intruder")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)^UPDATE\s+notes\s+SET\s+title\s*=\s*\$1,\s*content\s*=\s*\$2,.*WHERE\s+id\s*=\s*\$3\s+AND\s+user_id\s*=\s*\$4\s+RETURNING\s+updated_at$`).
		WithArgs("ideas", "more", "n-1", "owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	got, err := repo.Update(context.Background(), &models.Note{ID: "n-1", OwnerID: "owner-1", Title: "ideas", Content: "more"})
	require.NoError(t, err)
	assert.Equal(t, now, got.UpdatedAt)
}

func TestDelete_NotOwned(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`).
		WithArgs("n-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "n-1", "intruder"), common.ErrNotFound)
}
