package repo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
)

// stepOrder ranks onboarding steps inside SQL so current_step never moves backwards.
const stepOrder = `ARRAY['awaiting_name','awaiting_age','awaiting_gender','completed']`

// OnboardingRepo provides data access for the onboarding_states table.
type OnboardingRepo struct {
	db *sqlx.DB
}

func NewOnboardingRepo(db *sqlx.DB) *OnboardingRepo { return &OnboardingRepo{db: db} }

// EnsureTable creates the onboarding_states table if not exists.
func (r *OnboardingRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS onboarding_states (
  phone TEXT PRIMARY KEY,
  has_provided_name BOOLEAN NOT NULL DEFAULT false,
  has_provided_age BOOLEAN NOT NULL DEFAULT false,
  has_provided_gender BOOLEAN NOT NULL DEFAULT false,
  has_agreed_to_terms BOOLEAN NOT NULL DEFAULT false,
  current_step TEXT NOT NULL DEFAULT 'awaiting_name',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts the onboarding row for a user.
func (r *OnboardingRepo) Create(ctx context.Context, o *entity.OnboardingState) error {
	const q = `INSERT INTO onboarding_states (phone, has_provided_name, has_provided_age, has_provided_gender, has_agreed_to_terms, current_step)
		  VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, q, o.Phone, o.HasProvidedName, o.HasProvidedAge, o.HasProvidedGender, o.HasAgreedToTerms, string(o.CurrentStep))
	return row.Scan(&o.CreatedAt, &o.UpdatedAt)
}

// FindByPhone returns the onboarding state for a phone identifier or sql.ErrNoRows.
func (r *OnboardingRepo) FindByPhone(ctx context.Context, phone string) (*entity.OnboardingState, error) {
	const q = `SELECT phone, has_provided_name, has_provided_age, has_provided_gender, has_agreed_to_terms,
		current_step, created_at, updated_at
	  FROM onboarding_states WHERE phone=$1`
	var o entity.OnboardingState
	if err := r.db.GetContext(ctx, &o, q, phone); err != nil {
		return nil, err
	}
	return &o, nil
}

// Update applies patch monotonically: flags are OR-ed in and current_step only
// advances. Returns sql.ErrNoRows when no row matched.
func (r *OnboardingRepo) Update(ctx context.Context, phone string, patch entity.OnboardingPatch) error {
	const q = `UPDATE onboarding_states SET
		has_provided_name = has_provided_name OR $2,
		has_provided_age = has_provided_age OR $3,
		has_provided_gender = has_provided_gender OR $4,
		current_step = CASE
			WHEN $5::text IS NOT NULL
			 AND array_position(` + stepOrder + `, $5::text) > COALESCE(array_position(` + stepOrder + `, current_step), 0)
			THEN $5::text ELSE current_step END,
		updated_at = NOW()
	  WHERE phone=$1`
	var step *string
	if patch.CurrentStep != nil {
		s := string(*patch.CurrentStep)
		step = &s
	}
	res, err := r.db.ExecContext(ctx, q, phone, patch.HasProvidedName, patch.HasProvidedAge, patch.HasProvidedGender, step)
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
