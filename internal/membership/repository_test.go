package membership

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMembershipMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func membershipRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "plan_id", "start_date", "end_date", "status",
		"suspension_start", "suspension_end", "suspension_reason",
		"created_at", "updated_at",
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock, close := setupMembershipMock(t)
	defer close()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 6, 0)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO memberships (user_id, plan_id, start_date, end_date, status)")).
		WithArgs(7, 1, start, end).
		WillReturnRows(membershipRows().AddRow(42, 7, 1, start, end, "active", nil, nil, nil, time.Now(), time.Now()))

	m, err := repo.Create(context.Background(), 7, 1, start, end)
	require.NoError(t, err)
	assert.Equal(t, 42, m.ID)
	assert.Equal(t, StatusActive, m.Status)
}

func TestRepository_UpdateLifecycle_LocksRowAndCommits(t *testing.T) {
	repo, mock, close := setupMembershipMock(t)
	defer close()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 6, 0)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(42).
		WillReturnRows(membershipRows().AddRow(42, 7, 1, start, end, "active", nil, nil, nil, time.Now(), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE memberships")).
		WithArgs(end, StatusCancelled, nil, nil, nil, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m, err := repo.UpdateLifecycle(context.Background(), 42, func(m *Membership) error {
		return m.Cancel()
	})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, m.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateLifecycle_RollsBackOnTransitionError(t *testing.T) {
	repo, mock, close := setupMembershipMock(t)
	defer close()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 6, 0)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(42).
		WillReturnRows(membershipRows().AddRow(42, 7, 1, start, end, "cancelled", nil, nil, nil, time.Now(), time.Now()))
	mock.ExpectRollback()

	_, err := repo.UpdateLifecycle(context.Background(), 42, func(m *Membership) error {
		return m.Cancel()
	})
	assert.ErrorIs(t, err, ErrInvalidState)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindSuspensionsEnding(t *testing.T) {
	repo, mock, close := setupMembershipMock(t)
	defer close()

	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'suspended' AND suspension_end < $1")).
		WithArgs(today).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(3))

	ids, err := repo.FindSuspensionsEnding(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids)
}

func TestRepository_GetPlan(t *testing.T) {
	repo, mock, close := setupMembershipMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM plans")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "base_price_cents", "active", "created_at"}).
			AddRow(1, "Basic", "Gym floor access", 50000, true, time.Now()))

	p, err := repo.GetPlan(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), p.BasePriceCents)
}
