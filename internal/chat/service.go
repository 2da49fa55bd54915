package chat

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/chat/entity"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/chat/repo"
	"github.com/ovaphlow/pitchfork/service-health-bot/pkg/utilities"
)

// DefaultHistoryLimit is the context window handed to the intent oracle.
const DefaultHistoryLimit = 10

// Service is the record-store façade for the chat log.
type Service struct {
	repo *repo.ChatRepo
	ids  *utilities.IDGenerator
}

func NewService(db *sqlx.DB, ids *utilities.IDGenerator) *Service {
	return &Service{repo: repo.NewChatRepo(db), ids: ids}
}

func (s *Service) EnsureTable(ctx context.Context) error {
	return s.repo.EnsureTable(ctx)
}

// Append records one message.
func (s *Service) Append(ctx context.Context, phone, body string, role entity.Role) error {
	e := &entity.Entry{ID: s.ids.Next(), Phone: phone, Message: body, Role: role}
	if err := s.repo.Append(ctx, e); err != nil {
		return fmt.Errorf("append chat log: %w", err)
	}
	return nil
}

// FindRecent returns up to limit entries, newest first.
func (s *Service) FindRecent(ctx context.Context, phone string, limit int) ([]*entity.Entry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.FindRecent(ctx, phone, limit)
}

// FindChronological returns up to limit of the most recent entries, oldest first.
func (s *Service) FindChronological(ctx context.Context, phone string, limit int) ([]*entity.Entry, error) {
	recent, err := s.FindRecent(ctx, phone, limit)
	if err != nil {
		return nil, err
	}
	return Chronological(recent), nil
}

// Chronological returns a reversed copy of a newest-first slice.
func Chronological(newestFirst []*entity.Entry) []*entity.Entry {
	out := make([]*entity.Entry, len(newestFirst))
	for i, e := range newestFirst {
		out[len(newestFirst)-1-i] = e
	}
	return out
}
