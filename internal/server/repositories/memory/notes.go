package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/notes"
)

type NoteRepository struct {
	s *Store
}

var _ notes.Repository = (*NoteRepository)(nil)

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, seq := r.s.nextID()
	now := r.s.now()
	note.ID = id
	note.CreatedAt = now
	note.UpdatedAt = now
	r.s.notes[id] = row[models.Note]{seq: seq, v: *note}
	return note, nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]row[models.Note], 0)
	for _, rw := range r.s.notes {
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

	out := make([]*models.Note, 0, len(rows))
	for _, rw := range rows {
		n := rw.v
		out = append(out, &n)
	}
	return out, nil
}

func (r *NoteRepository) Get(ctx context.Context, id, ownerID string) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.s.notes[id]
	if !ok || rw.v.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	n := rw.v
	return &n, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.s.notes[note.ID]
	if !ok || rw.v.OwnerID != note.OwnerID {
		return nil, common.ErrNotFound
	}
	note.CreatedAt = rw.v.CreatedAt
	note.UpdatedAt = r.s.now()
	rw.v = *note
	r.s.notes[note.ID] = rw
	return note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.s.notes[id]
	if !ok || rw.v.OwnerID != ownerID {
		return common.ErrNotFound
	}
	delete(r.s.notes, id)
	return nil
}
