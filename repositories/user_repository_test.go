package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumnNames = []string{
	"id", "name", "email", "phone", "password_hash", "user_type", "avatar_url", "banner_url",
	"about", "country", "state", "region", "created_at", "updated_at",
}

func newUserRepoMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresUserRepository(db), mock
}

func TestUserUpsertPlayerData_UnknownUser(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	mock.ExpectExec("INSERT INTO players_data").
		WithArgs(999, nil, nil, "mixed").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "players_data_user_id_fkey"})

	err := repo.UpsertPlayerData(context.Background(), nil, 999, nil, nil, "mixed")
	assert.ErrorIs(t, err, ErrForeignKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Create(context.Background(), nil, &models.User{Name: "Ann", Email: "ann@example.com", UserType: models.UserTypePlayer})
	assert.ErrorIs(t, err, ErrUserEmailConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetDetails_PlayerProfile(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	now := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM users u WHERE u.id").
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(userColumnNames).
			AddRow(4, "Ann", "ann@example.com", nil, "hash", "player", nil, nil, nil, "AU", "NSW", nil, now, now))
	mock.ExpectQuery("LEFT JOIN players_data").
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{
			"sport", "club", "club_id", "gender", "achievements", "images",
			"club_id", "name", "sport", "address", "country", "state", "region",
			"avatar_url", "banner_url", "description", "created_at",
		}).AddRow("bowls", "North", 3, "female", []byte(`[{"id":1}]`), nil,
			3, "North Bowls", "bowls", nil, "AU", "NSW", nil, nil, nil, nil, now))

	details, err := repo.GetDetails(context.Background(), 4)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	profile, ok := details.Profile.(*models.PlayerProfile)
	require.True(t, ok, "expected a player profile, got %T", details.Profile)
	assert.Equal(t, models.UserTypePlayer, profile.Kind())
	assert.Equal(t, "bowls", *profile.Sport)
	require.NotNil(t, profile.ClubData)
	assert.Equal(t, "North Bowls", profile.ClubData.Name)
	assert.JSONEq(t, `[{"id":1}]`, string(details.Achievements))
	assert.JSONEq(t, `[]`, string(details.Images))
}

func TestUserGetDetails_OrganiserProfile(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	now := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM users u WHERE u.id").
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows(userColumnNames).
			AddRow(6, "Org", "org@example.com", nil, "hash", "organiser", nil, nil, nil, nil, nil, nil, now, now))
	mock.ExpectQuery("LEFT JOIN organisers_data").
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows([]string{
			"club", "club_id", "organiser_type", "bank_name", "account_name", "bsb", "account_number",
			"achievements", "images",
		}).AddRow("North", nil, "club", "Bank", "Org Pty", "062-000", "1234", nil, nil))

	details, err := repo.GetDetails(context.Background(), 6)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	profile, ok := details.Profile.(*models.OrganiserProfile)
	require.True(t, ok, "expected an organiser profile, got %T", details.Profile)
	assert.Equal(t, models.UserTypeOrganiser, profile.Kind())
	assert.Equal(t, "062-000", *profile.BSB)
	assert.Nil(t, profile.ClubID)
}

func TestUserGetDetails_NotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	mock.ExpectQuery("FROM users u WHERE u.id").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(userColumnNames))

	_, err := repo.GetDetails(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
