package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type achievementFixture struct {
	svc          AchievementService
	achievements *fakeAchievementRepo
	images       *fakeImageRepo
	uploader     *fakeImageUploader
	mock         sqlmock.Sqlmock
}

func newAchievementFixture(t *testing.T) *achievementFixture {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	f := &achievementFixture{
		achievements: &fakeAchievementRepo{
			achievements: map[int]*models.Achievement{
				7: {ID: 7, EntityID: 3, EntityType: models.EntityPlayer, Title: "State Singles"},
			},
			owners: map[models.EntityType][]int{
				models.EntityPlayer: {3},
				models.EntityTeam:   {5},
			},
		},
		images:   &fakeImageRepo{},
		uploader: &fakeImageUploader{},
		mock:     mock,
	}
	svc := NewAchievementService(database, f.achievements, f.images, f.uploader).(*achievementService)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	f.svc = svc
	return f
}

func TestDeleteAchievement_NotOwner(t *testing.T) {
	f := newAchievementFixture(t)

	err := f.svc.Delete(context.Background(), 7, 4, "")
	assertServiceError(t, err, ErrForbidden, "You are not authorized to delete this achievement")

	assert.Empty(t, f.achievements.deleted)
	assert.Empty(t, f.images.deletedByAchievement)
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestDeleteAchievement_WrongEntityType(t *testing.T) {
	f := newAchievementFixture(t)

	err := f.svc.Delete(context.Background(), 7, 3, "team")
	assertServiceError(t, err, ErrValidation, "Invalid entity type for this achievement")
	assert.Empty(t, f.achievements.deleted)
}

func TestDeleteAchievement_NotFound(t *testing.T) {
	f := newAchievementFixture(t)

	err := f.svc.Delete(context.Background(), 8, 3, "player")
	assertServiceError(t, err, ErrNotFound, "Achievement not found")
}

func TestDeleteAchievement_RemovesImagesAndRow(t *testing.T) {
	f := newAchievementFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	require.NoError(t, f.svc.Delete(context.Background(), 7, 3, "Player"))
	require.NoError(t, f.mock.ExpectationsWereMet())

	assert.Equal(t, []int{7}, f.images.deletedByAchievement)
	assert.Equal(t, []int{7}, f.achievements.deleted)
}

func TestCreateAchievement_Validation(t *testing.T) {
	f := newAchievementFixture(t)

	_, err := f.svc.Create(context.Background(), CreateAchievementInput{EntityID: 3, EntityType: "player"})
	assertServiceError(t, err, ErrValidation,
		"Missing required fields: entity_id, entity_type, title, and date_achieved are required")

	_, err = f.svc.Create(context.Background(), CreateAchievementInput{
		EntityID: 3, EntityType: "sponsor", Title: "Best Kit", DateAchieved: "2024-03-01",
	})
	assertServiceError(t, err, ErrValidation, "Invalid entity_type")

	_, err = f.svc.Create(context.Background(), CreateAchievementInput{
		EntityID: 9, EntityType: "team", Title: "Pennant", DateAchieved: "2024-03-01",
	})
	assertServiceError(t, err, ErrNotFound, "team not found")
}

func TestCreateAchievement_SkipsFailedImages(t *testing.T) {
	f := newAchievementFixture(t)

	res, err := f.svc.Create(context.Background(), CreateAchievementInput{
		EntityID:     5,
		EntityType:   "team",
		Title:        "Pennant Winners",
		DateAchieved: "2024-03-01",
		Images: []AchievementImageInput{
			{ImageBase64: "aGVsbG8="},
			{ImageBase64: "%%%"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 11, res.ID)
	require.Len(t, res.Images, 1)
	img := res.Images[0]
	assert.Equal(t, "cf-achievement-11-1700000000000-0.jpg", img.CloudflareImageID)
	require.NotNil(t, img.TeamID)
	assert.Equal(t, 5, *img.TeamID)
	assert.Nil(t, img.UserID)
	require.NotNil(t, img.AchievementID)
	assert.Equal(t, 11, *img.AchievementID)
}
