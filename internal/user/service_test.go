package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
)

func setupService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserService(sqlx.NewDb(db, "sqlmock")), mock
}

func TestUserService_FindByPhone_MapsNoRows(t *testing.T) {
	svc, mock := setupService(t)
	mock.ExpectQuery(`FROM users`).WillReturnError(sql.ErrNoRows)

	_, err := svc.FindByPhone(context.Background(), "2348000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_FindOnboarding_MapsNoRows(t *testing.T) {
	svc, mock := setupService(t)
	mock.ExpectQuery(`FROM onboarding_states`).WillReturnError(sql.ErrNoRows)

	_, err := svc.FindOnboarding(context.Background(), "2348000000000")
	assert.ErrorIs(t, err, ErrOnboardingNotFound)
}

func TestUserService_Update_RejectsInvalidValues(t *testing.T) {
	svc, mock := setupService(t)
	g := "robot"
	age := 130

	assert.ErrorIs(t, svc.Update(context.Background(), "1", entity.UserPatch{Gender: &g}), ErrInvalidGender)
	assert.ErrorIs(t, svc.Update(context.Background(), "1", entity.UserPatch{Age: &age}), ErrInvalidAge)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Update_MissingUser(t *testing.T) {
	svc, mock := setupService(t)
	name := "Ada"
	mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Update(context.Background(), "1", entity.UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
