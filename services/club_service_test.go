package services

import (
	"context"
	"testing"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClubFixture() (ClubService, *fakeClubRepo) {
	clubs := &fakeClubRepo{clubs: map[int]*models.Club{3: {ID: 3, Name: "North Bowls"}}}
	users := &fakeUserRepo{users: map[int]*models.User{9: {ID: 9, Name: "Ann"}}}
	return NewClubService(clubs, users), clubs
}

func TestAddClubAdmin_UnknownClub(t *testing.T) {
	svc, clubs := newClubFixture()

	_, err := svc.AddAdmin(context.Background(), 99, 9, "")
	assertServiceError(t, err, ErrNotFound, "Club not found")
	assert.Empty(t, clubs.admins)
}

func TestAddClubAdmin_UnknownUser(t *testing.T) {
	svc, clubs := newClubFixture()

	_, err := svc.AddAdmin(context.Background(), 3, 404, "")
	assertServiceError(t, err, ErrNotFound, "User not found")
	assert.Empty(t, clubs.admins)
}

func TestAddClubAdmin_DefaultRole(t *testing.T) {
	svc, clubs := newClubFixture()

	admin, err := svc.AddAdmin(context.Background(), 3, 9, "  ")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)

	_, err = svc.AddAdmin(context.Background(), 3, 9, "treasurer")
	require.NoError(t, err)
	require.Len(t, clubs.admins, 2)
	assert.Equal(t, "treasurer", clubs.admins[1].Role)

	_, err = svc.AddAdmin(context.Background(), 0, 9, "")
	assertServiceError(t, err, ErrValidation, "Missing required fields")
}
