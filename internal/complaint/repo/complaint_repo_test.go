package repo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint/entity"
)

func setupMockDB(t *testing.T) (*ComplaintRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewComplaintRepo(sqlx.NewDb(db, "sqlmock")), mock
}

func TestComplaintRepo_Create(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO complaints`).
		WithArgs("c1", "2348000000000", "headache", "Please describe", "New", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	c := &entity.Complaint{ID: "c1", Phone: "2348000000000", Complaint: "headache", Question: "Please describe", Status: entity.StatusNew}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, now, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepo_FindAllByPhone_NewestFirst(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now()

	cols := []string{"id", "phone", "complaint", "question", "status", "severity", "resolution", "resolved_by", "created_at", "updated_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("c2", "p", "worse today", "q2", "In Progress", nil, nil, nil, now, now).
		AddRow("c1", "p", "headache", "q1", "New", "Low", nil, nil, now.Add(-time.Hour), now)
	mock.ExpectQuery(`ORDER BY created_at DESC, id DESC LIMIT \$2`).
		WithArgs("p", 100).
		WillReturnRows(rows)

	out, err := repo.FindAllByPhone(context.Background(), "p", 100)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, entity.StatusInProgress, out[0].Status)
	assert.Nil(t, out[0].Severity)
	require.NotNil(t, out[1].Severity)
	assert.Equal(t, "Low", *out[1].Severity)
}

func TestComplaintRepo_UpdateLatest(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectExec(`UPDATE complaints SET complaint=\$2, question=\$3, status=\$4`).
		WithArgs("p", "still hurts", "Since when?", "In Progress").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateLatest(context.Background(), "p", entity.Patch{Complaint: "still hurts", Question: "Since when?", Status: entity.StatusInProgress})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepo_UpdateLatest_None(t *testing.T) {
	repo, mock := setupMockDB(t)
	mock.ExpectExec(`UPDATE complaints`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateLatest(context.Background(), "p", entity.Patch{Status: entity.StatusInProgress})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
