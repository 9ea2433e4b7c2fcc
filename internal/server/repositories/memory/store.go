// Package memory is an in-process implementation of every repository,
// selected with the memory:// DSN. Data lives until the process exits.
package memory

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/google/uuid"
)

// Store guards all tables with one mutex so multi-row checks (unique
// username and email, reset token compare-and-clear) are atomic.
type Store struct {
	mu  sync.Mutex
	now func() time.Time
	seq int64

	users   map[string]*models.User
	todos   map[string]row[models.Todo]
	notes   map[string]row[models.Note]
	records map[string]row[models.Record]
}

// row keeps insertion order so ties on timestamps sort deterministically.
type row[T any] struct {
	seq int64
	v   T
}

func NewStore() *Store {
	return &Store{
		now:     time.Now,
		users:   make(map[string]*models.User),
		todos:   make(map[string]row[models.Todo]),
		notes:   make(map[string]row[models.Note]),
		records: make(map[string]row[models.Record]),
	}
}

// WithClock replaces the time source; used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Users() *UserRepository     { return &UserRepository{s: s} }
func (s *Store) Todos() *TodoRepository     { return &TodoRepository{s: s} }
func (s *Store) Notes() *NoteRepository     { return &NoteRepository{s: s} }
func (s *Store) Records() *RecordRepository { return &RecordRepository{s: s} }

// nextID must be called with mu held.
func (s *Store) nextID() (string, int64) {
	s.seq++
	return uuid.NewString(), s.seq
}
