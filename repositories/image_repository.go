package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/models"
)

var ErrImageNotFound = errors.New("image not found")

// ImageOwner selects gallery images by user or team; exactly one id is set.
type ImageOwner struct {
	UserID *int
	TeamID *int
}

type ImageRepository interface {
	Create(ctx context.Context, exec SQLExecutor, image *models.Image) error
	GetByID(ctx context.Context, id int) (*models.Image, error)
	Delete(ctx context.Context, id int) error
	DeleteByAchievement(ctx context.Context, exec SQLExecutor, achievementID int) error
	ListByOwner(ctx context.Context, owner ImageOwner, page, limit int) ([]models.Image, int, error)
}

type postgresImageRepository struct {
	db *sql.DB
}

func NewPostgresImageRepository(db *sql.DB) ImageRepository {
	return &postgresImageRepository{db: db}
}

const imageColumns = `i.id, i.cloudflare_image_id, i.achievement_id, i.user_id, i.team_id, i.image_url,
	i.avatar_url, i.thumbnail_url, i.created_at`

func scanImage(row interface{ Scan(...interface{}) error }, img *models.Image) error {
	return row.Scan(&img.ID, &img.CloudflareImageID, &img.AchievementID, &img.UserID, &img.TeamID, &img.ImageURL,
		&img.AvatarURL, &img.ThumbnailURL, &img.CreatedAt)
}

func (r *postgresImageRepository) Create(ctx context.Context, exec SQLExecutor, img *models.Image) error {
	query := `
		INSERT INTO images (cloudflare_image_id, achievement_id, user_id, team_id, image_url, avatar_url, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		img.CloudflareImageID, img.AchievementID, img.UserID, img.TeamID, img.ImageURL, img.AvatarURL, img.ThumbnailURL,
	).Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to insert image: %w", err)
	}
	return nil
}

func (r *postgresImageRepository) GetByID(ctx context.Context, id int) (*models.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images i WHERE i.id = $1`

	var img models.Image
	if err := scanImage(r.db.QueryRowContext(ctx, query, id), &img); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get image %d: %w", id, err)
	}
	return &img, nil
}

func (r *postgresImageRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrImageNotFound)
}

func (r *postgresImageRepository) DeleteByAchievement(ctx context.Context, exec SQLExecutor, achievementID int) error {
	_, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM images WHERE achievement_id = $1`, achievementID)
	if err != nil {
		return fmt.Errorf("failed to delete images of achievement %d: %w", achievementID, err)
	}
	return nil
}

func (r *postgresImageRepository) ListByOwner(ctx context.Context, owner ImageOwner, page, limit int) ([]models.Image, int, error) {
	var b filterBuilder
	if owner.UserID != nil {
		b.add("i.user_id = ?", *owner.UserID)
	} else if owner.TeamID != nil {
		b.add("i.team_id = ?", *owner.TeamID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images i`+b.where(), b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}

	query := `SELECT ` + imageColumns + ` FROM images i` + b.where() + `
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT ` + b.next(limit) + ` OFFSET ` + b.next((page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := make([]models.Image, 0)
	for rows.Next() {
		var img models.Image
		if err := scanImage(rows, &img); err != nil {
			return nil, 0, fmt.Errorf("failed to scan image row: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating image rows: %w", err)
	}
	return images, total, nil
}
