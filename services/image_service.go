package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/metrics"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type UploadImageItem struct {
	Image    string `json:"image"`
	Filename string `json:"filename"`
}

type GalleryUploadInput struct {
	ImageBase64 string `json:"image_base64"`
	UserID      *int   `json:"user_id"`
	TeamID      *int   `json:"team_id"`
}

type ImageService interface {
	UploadImages(ctx context.Context, items []UploadImageItem) ([]storage.UploadedImage, error)
	ListGallery(ctx context.Context, owner repositories.ImageOwner, page int) ([]models.Image, models.Pagination, error)
	UploadGalleryImage(ctx context.Context, input GalleryUploadInput) (*models.Image, error)
	DeleteGalleryImage(ctx context.Context, id int) error
}

type imageService struct {
	imageRepo repositories.ImageRepository
	userRepo  repositories.UserRepository
	teamRepo  repositories.TeamRepository
	images    storage.ImageUploader
}

func NewImageService(
	imageRepo repositories.ImageRepository,
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	images storage.ImageUploader,
) ImageService {
	return &imageService{imageRepo: imageRepo, userRepo: userRepo, teamRepo: teamRepo, images: images}
}

// UploadImages validates every item before relaying any of them, then uploads in parallel.
func (s *imageService) UploadImages(ctx context.Context, items []UploadImageItem) ([]storage.UploadedImage, error) {
	if len(items) == 0 {
		return nil, validationError("Missing or invalid images array")
	}

	decoded := make([][]byte, len(items))
	for i, item := range items {
		if item.Image == "" || strings.TrimSpace(item.Filename) == "" {
			return nil, validationError("Each image must have image and filename")
		}
		data, err := storage.DecodeBase64Image(item.Image)
		if err != nil {
			return nil, errInvalidBase64
		}
		decoded[i] = data
	}

	results := make([]storage.UploadedImage, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.UploadConcurrency)
	for i := range items {
		g.Go(func() error {
			img, err := s.images.UploadImage(gctx, decoded[i], items[i].Filename)
			if err != nil {
				metrics.Uploads.WithLabelValues("image", "error").Inc()
				return fmt.Errorf("failed to upload %s: %w", items[i].Filename, err)
			}
			metrics.Uploads.WithLabelValues("image", "success").Inc()
			results[i] = *img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *imageService) ListGallery(ctx context.Context, owner repositories.ImageOwner, page int) ([]models.Image, models.Pagination, error) {
	if owner.UserID == nil && owner.TeamID == nil {
		return nil, models.Pagination{}, validationError("Either user_id or team_id must be provided")
	}

	page, limit := normalizePage(page, constants.GalleryPageSize, constants.GalleryPageSize)
	images, total, err := s.imageRepo.ListByOwner(ctx, owner, page, limit)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list gallery images: %w", err)
	}
	return images, models.NewPagination(page, limit, total), nil
}

func (s *imageService) UploadGalleryImage(ctx context.Context, input GalleryUploadInput) (*models.Image, error) {
	if input.ImageBase64 == "" || (input.UserID == nil && input.TeamID == nil) {
		return nil, validationError("Required fields missing: image_base64 and either user_id or team_id")
	}

	img := &models.Image{}
	var filename string
	if input.UserID != nil {
		if _, err := s.userRepo.GetByID(ctx, nil, *input.UserID); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, errUserNotFound
			}
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		img.UserID = input.UserID
		filename = fmt.Sprintf("gallery-user-%d.jpg", *input.UserID)
	} else {
		if _, err := s.teamRepo.GetByID(ctx, nil, *input.TeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, errTeamNotFound
			}
			return nil, fmt.Errorf("failed to get team: %w", err)
		}
		img.TeamID = input.TeamID
		filename = fmt.Sprintf("gallery-team-%d.jpg", *input.TeamID)
	}

	uploaded, err := uploadBase64(ctx, s.images, input.ImageBase64, filename, "gallery")
	if err != nil {
		return nil, err
	}

	img.CloudflareImageID = uploaded.ID
	img.ImageURL = uploaded.Variants.Public
	img.AvatarURL = &uploaded.Variants.Avatar
	img.ThumbnailURL = &uploaded.Variants.Thumbnail

	if err := s.imageRepo.Create(ctx, nil, img); err != nil {
		return nil, fmt.Errorf("failed to store gallery image: %w", err)
	}
	return img, nil
}

// DeleteGalleryImage removes the image from the image service first, then from the database.
func (s *imageService) DeleteGalleryImage(ctx context.Context, id int) error {
	img, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrImageNotFound) {
			return notFoundError("Image not found")
		}
		return fmt.Errorf("failed to get image: %w", err)
	}

	if err := s.images.DeleteImage(ctx, img.CloudflareImageID); err != nil {
		return fmt.Errorf("failed to delete image from provider: %w", err)
	}

	if err := s.imageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrImageNotFound) {
			zerolog.Ctx(ctx).Warn().Int("image_id", id).Msg("image row vanished during delete")
			return nil
		}
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
