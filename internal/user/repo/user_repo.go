package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
)

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the users table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
  phone TEXT PRIMARY KEY,
  name TEXT,
  profile_name TEXT,
  gender TEXT CHECK (gender IN ('male','female','other')),
  age INT CHECK (age BETWEEN 0 AND 120),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new user row and fills in the server-side timestamps.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const q = `INSERT INTO users (phone, name, profile_name, gender, age)
		  VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, q, u.Phone, u.Name, u.ProfileName, u.Gender, u.Age)
	return row.Scan(&u.CreatedAt, &u.UpdatedAt)
}

// FindByPhone returns the user for a phone identifier or sql.ErrNoRows.
func (r *UserRepo) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	const q = `SELECT phone, name, profile_name, gender, age, created_at, updated_at
	  FROM users WHERE phone=$1`
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, phone); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update writes the non-nil fields of patch. Returns sql.ErrNoRows when no user matched.
func (r *UserRepo) Update(ctx context.Context, phone string, patch entity.UserPatch) error {
	if patch.Empty() {
		return nil
	}
	sets := make([]string, 0, 5)
	args := []any{phone}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.ProfileName != nil {
		add("profile_name", *patch.ProfileName)
	}
	if patch.Gender != nil {
		add("gender", *patch.Gender)
	}
	if patch.Age != nil {
		add("age", *patch.Age)
	}
	sets = append(sets, "updated_at=NOW()")
	q := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE phone=$1`
	res, err := r.db.ExecContext(ctx, q, args...)
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
