package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/records"
)

type RecordRepository struct {
	s *Store
}

var _ records.Repository = (*RecordRepository)(nil)

func (r *RecordRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, seq := r.s.nextID()
	now := r.s.now()
	rec.ID = id
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.s.records[id] = row[models.Record]{seq: seq, v: *rec}
	return rec, nil
}

func (r *RecordRepository) owned(ownerID string) []row[models.Record] {
	rows := make([]row[models.Record], 0)
	for _, rw := range r.s.records {
		if rw.v.OwnerID == ownerID {
			rows = append(rows, rw)
		}
	}
	return rows
}

func (r *RecordRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := r.owned(ownerID)
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].v, rows[j].v
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]*models.Record, 0, len(rows))
	for _, rw := range rows {
		rec := rw.v
		out = append(out, &rec)
	}
	return out, nil
}

func (r *RecordRepository) Get(ctx context.Context, id, ownerID string) (*models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.s.records[id]
	if !ok || rw.v.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	rec := rw.v
	return &rec, nil
}

func (r *RecordRepository) Update(ctx context.Context, rec *models.Record) (*models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.s.records[rec.ID]
	if !ok || rw.v.OwnerID != rec.OwnerID {
		return nil, common.ErrNotFound
	}
	rec.CreatedAt = rw.v.CreatedAt
	rec.UpdatedAt = r.s.now()
	rw.v = *rec
	r.s.records[rec.ID] = rw
	return rec, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.s.records[id]
	if !ok || rw.v.OwnerID != ownerID {
		return common.ErrNotFound
	}
	delete(r.s.records, id)
	return nil
}

func (r *RecordRepository) Summary(ctx context.Context, ownerID string) (models.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := r.owned(ownerID)
	list := make([]*models.Record, 0, len(rows))
	for i := range rows {
		list = append(list, &rows[i].v)
	}
	return models.Summarize(list), nil
}
