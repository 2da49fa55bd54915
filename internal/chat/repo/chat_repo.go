package repo

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/chat/entity"
)

// ChatRepo provides data access for the append-only chat_logs table.
type ChatRepo struct {
	db *sqlx.DB
}

func NewChatRepo(db *sqlx.DB) *ChatRepo { return &ChatRepo{db: db} }

// EnsureTable creates the chat_logs table and its lookup index.
func (r *ChatRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS chat_logs (
  id TEXT PRIMARY KEY,
  phone TEXT NOT NULL,
  message TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','BOT')),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_chat_logs_phone_created ON chat_logs(phone, created_at DESC);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Append inserts an entry. ID must be set by the caller.
func (r *ChatRepo) Append(ctx context.Context, e *entity.Entry) error {
	const q = `INSERT INTO chat_logs (id, phone, message, role) VALUES ($1, $2, $3, $4) RETURNING created_at`
	return r.db.QueryRowxContext(ctx, q, e.ID, e.Phone, e.Message, string(e.Role)).Scan(&e.CreatedAt)
}

// FindRecent returns the limit most recent entries for phone, newest first.
func (r *ChatRepo) FindRecent(ctx context.Context, phone string, limit int) ([]*entity.Entry, error) {
	const q = `SELECT id, phone, message, role, created_at FROM chat_logs
	  WHERE phone=$1 ORDER BY created_at DESC, id DESC LIMIT $2`
	var out []*entity.Entry
	if err := r.db.SelectContext(ctx, &out, q, phone, limit); err != nil {
		return nil, err
	}
	return out, nil
}
