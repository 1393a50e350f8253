package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceWithMock(t *testing.T, users *fakeUserRepo) (UserService, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewUserService(database, users, &fakeImageUploader{}), mock
}

func TestRegister_Validation(t *testing.T) {
	users := &fakeUserRepo{}
	svc, mock := newUserServiceWithMock(t, users)

	cases := []struct {
		name  string
		input RegisterInput
		msg   string
	}{
		{"blank email", RegisterInput{Email: "  ", Name: "Ann", Password: "pw", AccountType: "player"}, "Missing required fields"},
		{"blank name", RegisterInput{Email: "ann@example.com", Name: " ", Password: "pw", AccountType: "player"}, "Missing required fields"},
		{"no password", RegisterInput{Email: "ann@example.com", Name: "Ann", AccountType: "player"}, "Missing required fields"},
		{"no account type", RegisterInput{Email: "ann@example.com", Name: "Ann", Password: "pw"}, "Missing required fields"},
		{"unknown account type", RegisterInput{Email: "ann@example.com", Name: "Ann", Password: "pw", AccountType: "spectator"},
			"Invalid account_type. Must be one of: player, organiser"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			assertServiceError(t, err, ErrValidation, tc.msg)
		})
	}

	assert.Empty(t, users.created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{createErr: repositories.ErrUserEmailConflict}
	svc, mock := newUserServiceWithMock(t, users)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "ann@example.com", Name: "Ann", Password: "secret", AccountType: "player",
	})
	assertServiceError(t, err, ErrConflict, "Email already registered")
	assert.Empty(t, users.profiles)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_CreatesProfileForAccountType(t *testing.T) {
	cases := []struct {
		accountType string
		want        models.UserType
	}{
		{"Player", models.UserTypePlayer},
		{"organiser", models.UserTypeOrganiser},
	}

	for _, tc := range cases {
		t.Run(tc.accountType, func(t *testing.T) {
			users := &fakeUserRepo{}
			svc, mock := newUserServiceWithMock(t, users)
			mock.ExpectBegin()
			mock.ExpectCommit()

			id, err := svc.Register(context.Background(), RegisterInput{
				Email: " ann@example.com ", Name: "Ann", Password: "secret", AccountType: tc.accountType,
				Club: stringPtr("North"),
			})
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())

			assert.Equal(t, 500, id)
			require.Len(t, users.created, 1)
			assert.Equal(t, "ann@example.com", users.created[0].Email)
			assert.Equal(t, tc.want, users.created[0].UserType)
			assert.NotEqual(t, "secret", users.created[0].PasswordHash)

			require.Len(t, users.profiles, 1)
			assert.Equal(t, tc.want, users.profiles[0].Kind())
		})
	}
}

func TestGetUserDetails_ProfileVariant(t *testing.T) {
	users := &fakeUserRepo{details: map[int]*models.UserDetails{
		4: {User: models.User{ID: 4, UserType: models.UserTypePlayer}, Profile: &models.PlayerProfile{Sport: stringPtr("bowls")}},
		6: {User: models.User{ID: 6, UserType: models.UserTypeOrganiser}, Profile: &models.OrganiserProfile{BSB: stringPtr("062-000")}},
	}}
	svc, _ := newUserServiceWithMock(t, users)

	player, err := svc.GetDetails(context.Background(), 4)
	require.NoError(t, err)
	assert.IsType(t, &models.PlayerProfile{}, player.Profile)

	organiser, err := svc.GetDetails(context.Background(), 6)
	require.NoError(t, err)
	assert.IsType(t, &models.OrganiserProfile{}, organiser.Profile)

	_, err = svc.GetDetails(context.Background(), 404)
	assertServiceError(t, err, ErrNotFound, "User not found")
}
