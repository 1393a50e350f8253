package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var teamListColumns = []string{
	"team_id", "team_name", "sport_id", "team_type", "team_gender", "team_status",
	"created_by_user_id", "club_id", "club", "country", "state", "region", "avatar_url", "main_image_url",
	"description", "total_prize_money", "first_place", "second_place", "third_place", "created_at",
	"sport_name", "member_count", "members",
}

func newTeamRepoMock(t *testing.T) (TeamRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresTeamRepository(db), mock
}

func TestTeamList_OneObjectPerMember(t *testing.T) {
	repo, mock := newTeamRepoMock(t)
	created := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	members := `[
		{"id":1,"team_id":5,"user_id":11,"name":"Ann","email":"ann@example.com","avatar_url":null,"status":"approved","position":"skip","club":"North","joined_at":"2025-01-05T10:00:00+00:00"},
		{"id":2,"team_id":5,"user_id":12,"name":"Bob","email":"bob@example.com","avatar_url":null,"status":"pending","position":null,"club":null,"joined_at":"2025-01-06T10:00:00+00:00"},
		{"id":3,"team_id":5,"user_id":13,"name":"Cy","email":"cy@example.com","avatar_url":null,"status":"approved","position":"lead","club":"North","joined_at":"2025-01-07T10:00:00+00:00"}
	]`

	mock.ExpectQuery("FROM teams t").
		WithArgs("%bowl%").
		WillReturnRows(sqlmock.NewRows(teamListColumns).
			AddRow(5, "Bowlers", 2, "triples", "mixed", "active", 11, nil, nil, "AU", "NSW", nil, nil, nil,
				nil, 0.0, 0, 0, 0, created, "Lawn Bowls", 3, []byte(members)).
			AddRow(6, "Empty Rink", 2, "pairs", "male", "active", 12, nil, nil, "AU", nil, nil, nil, nil,
				nil, 0.0, 0, 0, 0, created, "Lawn Bowls", 0, nil))

	teams, err := repo.List(context.Background(), models.TeamFilter{Search: "bowl"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, teams, 2)

	full := teams[0]
	assert.Equal(t, 3, full.MemberCount)
	require.Len(t, full.TeamMembers, 3)
	assert.Equal(t, []int{11, 12, 13}, []int{full.TeamMembers[0].UserID, full.TeamMembers[1].UserID, full.TeamMembers[2].UserID})
	assert.Equal(t, models.MemberStatusPending, full.TeamMembers[1].Status)
	assert.Nil(t, full.TeamMembers[1].Position)
	assert.Equal(t, "lead", *full.TeamMembers[2].Position)
	assert.Equal(t, 5, *full.TeamMembers[0].TeamID)

	empty := teams[1]
	assert.Zero(t, empty.MemberCount)
	assert.NotNil(t, empty.TeamMembers)
	assert.Empty(t, empty.TeamMembers)
}
