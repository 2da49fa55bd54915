package complaint

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint/entity"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint/repo"
	"github.com/ovaphlow/pitchfork/service-health-bot/pkg/utilities"
)

// ErrNotFound is returned when a phone identifier has no complaint.
var ErrNotFound = errors.New("complaint not found")

// DefaultHistoryLimit bounds how many complaints are loaded per turn.
const DefaultHistoryLimit = 100

// Service is the record-store façade for complaints.
type Service struct {
	repo *repo.ComplaintRepo
	ids  *utilities.IDGenerator
}

func NewService(db *sqlx.DB, ids *utilities.IDGenerator) *Service {
	return &Service{repo: repo.NewComplaintRepo(db), ids: ids}
}

func (s *Service) EnsureTable(ctx context.Context) error {
	return s.repo.EnsureTable(ctx)
}

// Create assigns an id when missing and inserts the complaint.
func (s *Service) Create(ctx context.Context, c *entity.Complaint) error {
	if c.ID == "" {
		c.ID = s.ids.Next()
	}
	if c.Status == "" {
		c.Status = entity.StatusNew
	}
	return s.repo.Create(ctx, c)
}

// FindAllByPhone returns up to limit complaints, newest first.
func (s *Service) FindAllByPhone(ctx context.Context, phone string, limit int) ([]*entity.Complaint, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.FindAllByPhone(ctx, phone, limit)
}

// Latest returns the most recent complaint or ErrNotFound.
func (s *Service) Latest(ctx context.Context, phone string) (*entity.Complaint, error) {
	all, err := s.repo.FindAllByPhone(ctx, phone, 1)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return all[0], nil
}

// UpdateLatest overwrites the most recent complaint.
func (s *Service) UpdateLatest(ctx context.Context, phone string, p entity.Patch) error {
	if err := s.repo.UpdateLatest(ctx, phone, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
