package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationMarkRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresNotificationRepository(db)

	mock.ExpectExec("UPDATE notifications SET is_read = TRUE").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE notifications SET is_read = TRUE").WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.MarkRead(context.Background(), 3))
	assert.ErrorIs(t, repo.MarkRead(context.Background(), 4), ErrNotificationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationListByUser_Paginates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresNotificationRepository(db)
	now := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications`).WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery("FROM notifications").WithArgs(8, 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "type", "title", "message", "reference_id", "reference_type", "link", "image_url",
			"is_read", "read_at", "created_at",
		}).AddRow(12, 8, "team_invite", "Team Invitation", "You have been invited", 1, "team", "/teams/1-rollers", nil,
			false, nil, now))

	items, total, err := repo.ListByUser(context.Background(), 8, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Team Invitation", items[0].Title)
	require.NotNil(t, items[0].Link)
	assert.Equal(t, "/teams/1-rollers", *items[0].Link)
	assert.Nil(t, items[0].ReadAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
