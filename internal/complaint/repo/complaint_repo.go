package repo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint/entity"
)

// ComplaintRepo provides data access for the complaints table.
type ComplaintRepo struct {
	db *sqlx.DB
}

func NewComplaintRepo(db *sqlx.DB) *ComplaintRepo { return &ComplaintRepo{db: db} }

// EnsureTable creates the complaints table and its lookup index.
func (r *ComplaintRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS complaints (
  id TEXT PRIMARY KEY,
  phone TEXT NOT NULL,
  complaint TEXT NOT NULL DEFAULT '',
  question TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'New',
  severity TEXT,
  resolution TEXT,
  resolved_by TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_complaints_phone_created ON complaints(phone, created_at DESC);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a complaint. ID must be set by the caller.
func (r *ComplaintRepo) Create(ctx context.Context, c *entity.Complaint) error {
	const q = `INSERT INTO complaints (id, phone, complaint, question, status, severity)
		  VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, q, c.ID, c.Phone, c.Complaint, c.Question, string(c.Status), c.Severity)
	return row.Scan(&c.CreatedAt, &c.UpdatedAt)
}

// FindAllByPhone returns up to limit complaints for phone, newest first.
func (r *ComplaintRepo) FindAllByPhone(ctx context.Context, phone string, limit int) ([]*entity.Complaint, error) {
	const q = `SELECT id, phone, complaint, question, status, severity, resolution, resolved_by, created_at, updated_at
	  FROM complaints WHERE phone=$1 ORDER BY created_at DESC, id DESC LIMIT $2`
	var out []*entity.Complaint
	if err := r.db.SelectContext(ctx, &out, q, phone, limit); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateLatest overwrites the most recent complaint of phone. Returns sql.ErrNoRows
// when the phone has no complaint.
func (r *ComplaintRepo) UpdateLatest(ctx context.Context, phone string, p entity.Patch) error {
	const q = `UPDATE complaints SET complaint=$2, question=$3, status=$4, updated_at=NOW()
	  WHERE id = (SELECT id FROM complaints WHERE phone=$1 ORDER BY created_at DESC, id DESC LIMIT 1)`
	res, err := r.db.ExecContext(ctx, q, phone, p.Complaint, p.Question, string(p.Status))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
