package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/repomanager"
)

type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *NoteService {
	return &NoteService{db: db, repomanager: m, logger: logger.With("module", "notes")}
}

func (s *NoteService) List(ctx context.Context, ownerID string) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).ListByOwner(ctx, ownerID)
}

func (s *NoteService) Get(ctx context.Context, ownerID, id string) (*models.Note, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	return s.repomanager.Notes(s.db).Get(ctx, id, ownerID)
}

func (s *NoteService) Create(ctx context.Context, ownerID string, n *models.Note) (*models.Note, error) {
	note := &models.Note{
		OwnerID: ownerID,
		Title:   strings.TrimSpace(n.Title),
		Content: n.Content,
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).Create(ctx, note)
}

func (s *NoteService) Update(ctx context.Context, ownerID, id string, p models.NotePatch) (*models.Note, error) {
	note, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	note.Apply(p)
	if err := note.Validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).Update(ctx, note)
}

func (s *NoteService) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return common.ErrNotFound
	}
	return s.repomanager.Notes(s.db).Delete(ctx, id, ownerID)
}
