package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/models"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrVideoOwner    = errors.New("invalid video owner")
)

type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	ListPending(ctx context.Context, limit int) ([]models.Video, error)
	UpdateFromStream(ctx context.Context, video *models.Video) error
}

type postgresVideoRepository struct {
	db *sql.DB
}

func NewPostgresVideoRepository(db *sql.DB) VideoRepository {
	return &postgresVideoRepository{db: db}
}

func (r *postgresVideoRepository) Create(ctx context.Context, v *models.Video) error {
	column, ok := v.OwnerType.Column()
	if !ok {
		return ErrVideoOwner
	}

	// column comes from a fixed set, never from input.
	query := fmt.Sprintf(`
		INSERT INTO videos (cloudflare_video_id, %s, achievement_id, title, caption, playback_url, thumbnail_url,
		                    duration, width, height, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`, column)

	err := r.db.QueryRowContext(ctx, query,
		v.CloudflareVideoID, v.OwnerID, v.AchievementID, v.Title, v.Caption, v.PlaybackURL, v.ThumbnailURL,
		v.Duration, v.Width, v.Height, v.Status,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

// ListPending returns the oldest videos still being processed by Stream.
func (r *postgresVideoRepository) ListPending(ctx context.Context, limit int) ([]models.Video, error) {
	query := `
		SELECT v.id, v.cloudflare_video_id,
		       CASE WHEN v.user_id IS NOT NULL THEN 'user'
		            WHEN v.team_id IS NOT NULL THEN 'team'
		            WHEN v.organisation_id IS NOT NULL THEN 'organisation'
		            ELSE 'club' END,
		       COALESCE(v.user_id, v.team_id, v.organisation_id, v.club_id, 0),
		       v.achievement_id, v.title, v.caption, v.playback_url, v.thumbnail_url, v.duration, v.width, v.height,
		       v.status, v.created_at
		FROM videos v
		WHERE v.status = 'pending'
		ORDER BY v.created_at ASC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending videos: %w", err)
	}
	defer rows.Close()

	videos := make([]models.Video, 0)
	for rows.Next() {
		var v models.Video
		err := rows.Scan(&v.ID, &v.CloudflareVideoID, &v.OwnerType, &v.OwnerID,
			&v.AchievementID, &v.Title, &v.Caption, &v.PlaybackURL, &v.ThumbnailURL, &v.Duration, &v.Width, &v.Height,
			&v.Status, &v.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating video rows: %w", err)
	}
	return videos, nil
}

func (r *postgresVideoRepository) UpdateFromStream(ctx context.Context, v *models.Video) error {
	query := `
		UPDATE videos
		SET status = $1, playback_url = $2, thumbnail_url = $3, duration = $4, width = $5, height = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		v.Status, v.PlaybackURL, v.ThumbnailURL, v.Duration, v.Width, v.Height, v.ID)
	if err != nil {
		return fmt.Errorf("failed to update video %d: %w", v.ID, err)
	}
	return checkAffectedRows(result, ErrVideoNotFound)
}
