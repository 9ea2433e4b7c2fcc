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

// RecordService manages income and expense entries.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	logger      logging.Logger
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *RecordService {
	return &RecordService{db: db, repomanager: m, now: time.Now, logger: logger.With("module", "records")}
}

func (s *RecordService) WithClock(now func() time.Time) *RecordService {
	s.now = now
	return s
}

func (s *RecordService) List(ctx context.Context, ownerID string) ([]*models.Record, error) {
	return s.repomanager.Records(s.db).ListByOwner(ctx, ownerID)
}

func (s *RecordService) Get(ctx context.Context, ownerID, id string) (*models.Record, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	return s.repomanager.Records(s.db).Get(ctx, id, ownerID)
}

// Create stores r for ownerID. A zero Date means now.
func (s *RecordService) Create(ctx context.Context, ownerID string, r *models.Record) (*models.Record, error) {
	record := &models.Record{
		OwnerID:     ownerID,
		Type:        r.Type,
		Amount:      models.RoundAmount(r.Amount),
		Description: strings.TrimSpace(r.Description),
		Category:    strings.TrimSpace(r.Category),
		Date:        r.Date,
	}
	if record.Date.IsZero() {
		record.Date = s.now()
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Records(s.db).Create(ctx, record)
}

// Update applies p; the merged record is validated as a whole, so a type
// change must come with a category valid for the new type.
func (s *RecordService) Update(ctx context.Context, ownerID, id string, p models.RecordPatch) (*models.Record, error) {
	record, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	record.Apply(p)
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Records(s.db).Update(ctx, record)
}

func (s *RecordService) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return common.ErrNotFound
	}
	return s.repomanager.Records(s.db).Delete(ctx, id, ownerID)
}

func (s *RecordService) Summary(ctx context.Context, ownerID string) (models.Summary, error) {
	return s.repomanager.Records(s.db).Summary(ctx, ownerID)
}
