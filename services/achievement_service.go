package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/db"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type AchievementImageInput struct {
	ImageBase64 string `json:"image_base64"`
}

type CreateAchievementInput struct {
	EntityID     int                     `json:"entity_id"`
	EntityType   string                  `json:"entity_type"`
	Title        string                  `json:"title"`
	Description  *string                 `json:"description"`
	DateAchieved string                  `json:"date_achieved"`
	AwardLevel   *string                 `json:"award_level"`
	Result       *string                 `json:"result"`
	Images       []AchievementImageInput `json:"images"`
}

type AchievementService interface {
	Create(ctx context.Context, input CreateAchievementInput) (*models.AchievementWithImages, error)
	Delete(ctx context.Context, achievementID, userID int, entityType string) error
	ListByEntity(ctx context.Context, entityType string, entityID, page int) ([]models.AchievementWithImages, models.Pagination, error)
}

type achievementService struct {
	db              *sql.DB
	achievementRepo repositories.AchievementRepository
	imageRepo       repositories.ImageRepository
	images          storage.ImageUploader
	now             func() time.Time
}

func NewAchievementService(
	database *sql.DB,
	achievementRepo repositories.AchievementRepository,
	imageRepo repositories.ImageRepository,
	images storage.ImageUploader,
) AchievementService {
	return &achievementService{
		db:              database,
		achievementRepo: achievementRepo,
		imageRepo:       imageRepo,
		images:          images,
		now:             time.Now,
	}
}

func (s *achievementService) Create(ctx context.Context, input CreateAchievementInput) (*models.AchievementWithImages, error) {
	if input.EntityID <= 0 || input.EntityType == "" || strings.TrimSpace(input.Title) == "" || input.DateAchieved == "" {
		return nil, validationError("Missing required fields: entity_id, entity_type, title, and date_achieved are required")
	}

	entityType := models.EntityType(strings.ToLower(input.EntityType))
	if !entityType.Valid() {
		return nil, validationError("Invalid entity_type")
	}

	achieved, err := parseDate(input.DateAchieved)
	if err != nil {
		return nil, validationError("Invalid date_achieved")
	}

	exists, err := s.achievementRepo.EntityExists(ctx, entityType, input.EntityID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve achievement owner: %w", err)
	}
	if !exists {
		return nil, notFoundError(fmt.Sprintf("%s not found", entityType))
	}

	achievement := models.Achievement{
		EntityID:     input.EntityID,
		EntityType:   entityType,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		DateAchieved: achieved,
		AwardLevel:   input.AwardLevel,
		Result:       input.Result,
	}
	if err := s.achievementRepo.Create(ctx, nil, &achievement); err != nil {
		return nil, fmt.Errorf("failed to create achievement: %w", err)
	}

	images, err := s.attachImages(ctx, &achievement, input.Images)
	if err != nil {
		return nil, err
	}

	return &models.AchievementWithImages{Achievement: achievement, Images: images}, nil
}

// attachImages uploads the images in parallel and records the ones that succeeded.
// A failed upload is logged and skipped.
func (s *achievementService) attachImages(ctx context.Context, a *models.Achievement, inputs []AchievementImageInput) ([]models.Image, error) {
	images := make([]models.Image, 0, len(inputs))
	if len(inputs) == 0 {
		return images, nil
	}

	uploaded := make([]*storage.UploadedImage, len(inputs))
	stamp := s.now().UnixMilli()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.UploadConcurrency)
	for i, in := range inputs {
		g.Go(func() error {
			filename := fmt.Sprintf("achievement-%d-%d-%d.jpg", a.ID, stamp, i)
			img, err := uploadBase64(gctx, s.images, in.ImageBase64, filename, "achievement")
			if err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Int("achievement_id", a.ID).Int("index", i).Msg("achievement image upload failed")
				return nil
			}
			uploaded[i] = img
			return nil
		})
	}
	_ = g.Wait()

	var userID, teamID *int
	switch a.EntityType {
	case models.EntityPlayer, models.EntityOrganiser:
		userID = &a.EntityID
	case models.EntityTeam:
		teamID = &a.EntityID
	}

	for _, up := range uploaded {
		if up == nil {
			continue
		}
		img := models.Image{
			CloudflareImageID: up.ID,
			AchievementID:     &a.ID,
			UserID:            userID,
			TeamID:            teamID,
			ImageURL:          up.Variants.Public,
			AvatarURL:         &up.Variants.Avatar,
			ThumbnailURL:      &up.Variants.Thumbnail,
		}
		if err := s.imageRepo.Create(ctx, nil, &img); err != nil {
			return nil, fmt.Errorf("failed to store achievement image: %w", err)
		}
		images = append(images, img)
	}
	return images, nil
}

func (s *achievementService) Delete(ctx context.Context, achievementID, userID int, entityType string) error {
	if achievementID <= 0 || userID <= 0 {
		return errMissingFields
	}
	if entityType == "" {
		entityType = string(models.EntityPlayer)
	}

	achievement, err := s.achievementRepo.GetByID(ctx, achievementID)
	if err != nil {
		if errors.Is(err, repositories.ErrAchievementNotFound) {
			return notFoundError("Achievement not found")
		}
		return fmt.Errorf("failed to get achievement: %w", err)
	}

	if !strings.EqualFold(string(achievement.EntityType), entityType) {
		return validationError("Invalid entity type for this achievement")
	}
	if achievement.EntityID != userID {
		zerolog.Ctx(ctx).Warn().Int("achievement_id", achievementID).Int("user_id", userID).Msg("achievement delete refused")
		return forbiddenError("You are not authorized to delete this achievement")
	}

	err = db.InTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.imageRepo.DeleteByAchievement(ctx, tx, achievementID); err != nil {
			return err
		}
		return s.achievementRepo.Delete(ctx, tx, achievementID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAchievementNotFound) {
			return notFoundError("Achievement not found")
		}
		return fmt.Errorf("failed to delete achievement: %w", err)
	}
	return nil
}

func (s *achievementService) ListByEntity(ctx context.Context, entityType string, entityID, page int) ([]models.AchievementWithImages, models.Pagination, error) {
	et := models.EntityType(strings.ToLower(entityType))
	if et == "" {
		et = models.EntityPlayer
	}
	if !et.Valid() {
		return nil, models.Pagination{}, validationError("Invalid entity_type")
	}

	page, limit := normalizePage(page, constants.AchievementsPageSize, constants.AchievementsPageSize)
	items, total, err := s.achievementRepo.ListByEntity(ctx, et, entityID, page, limit)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list achievements: %w", err)
	}
	return items, models.NewPagination(page, limit, total), nil
}
