package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/models"
)

var (
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrUnsupportedEntity   = errors.New("unsupported entity type")
)

type AchievementRepository interface {
	EntityExists(ctx context.Context, entityType models.EntityType, id int) (bool, error)
	Create(ctx context.Context, exec SQLExecutor, achievement *models.Achievement) error
	GetByID(ctx context.Context, id int) (*models.Achievement, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	ListByEntity(ctx context.Context, entityType models.EntityType, entityID, page, limit int) ([]models.AchievementWithImages, int, error)
}

type postgresAchievementRepository struct {
	db *sql.DB
}

func NewPostgresAchievementRepository(db *sql.DB) AchievementRepository {
	return &postgresAchievementRepository{db: db}
}

const achievementColumns = `a.achievement_id, a.entity_id, a.entity_type, a.title, a.description, a.date_achieved,
	a.award_level, a.result, a.created_at`

func achievementDest(a *models.Achievement) []interface{} {
	return []interface{}{
		&a.ID, &a.EntityID, &a.EntityType, &a.Title, &a.Description, &a.DateAchieved,
		&a.AwardLevel, &a.Result, &a.CreatedAt,
	}
}

// nullableAchievement receives achievement columns from a LEFT JOIN.
type nullableAchievement struct {
	ID           sql.NullInt64
	EntityID     sql.NullInt64
	EntityType   sql.NullString
	Title        sql.NullString
	Description  *string
	DateAchieved sql.NullTime
	AwardLevel   *string
	Result       *string
	CreatedAt    sql.NullTime
}

func (a nullableAchievement) toModel() *models.Achievement {
	if !a.ID.Valid {
		return nil
	}
	return &models.Achievement{
		ID:           int(a.ID.Int64),
		EntityID:     int(a.EntityID.Int64),
		EntityType:   models.EntityType(a.EntityType.String),
		Title:        a.Title.String,
		Description:  a.Description,
		DateAchieved: a.DateAchieved.Time,
		AwardLevel:   a.AwardLevel,
		Result:       a.Result,
		CreatedAt:    a.CreatedAt.Time,
	}
}

var entityOwnerQueries = map[models.EntityType]string{
	models.EntityPlayer:      `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND user_type = 'player')`,
	models.EntityOrganiser:   `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND user_type = 'organiser')`,
	models.EntityClub:        `SELECT EXISTS (SELECT 1 FROM clubs WHERE club_id = $1)`,
	models.EntityTeam:        `SELECT EXISTS (SELECT 1 FROM teams WHERE team_id = $1)`,
	models.EntityAssociation: `SELECT EXISTS (SELECT 1 FROM associations WHERE id = $1)`,
}

// EntityExists checks the owning table of an achievement entity.
func (r *postgresAchievementRepository) EntityExists(ctx context.Context, entityType models.EntityType, id int) (bool, error) {
	query, ok := entityOwnerQueries[entityType]
	if !ok {
		return false, ErrUnsupportedEntity
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to look up %s %d: %w", entityType, id, err)
	}
	return exists, nil
}

func (r *postgresAchievementRepository) Create(ctx context.Context, exec SQLExecutor, a *models.Achievement) error {
	query := `
		INSERT INTO achievements (entity_id, entity_type, title, description, date_achieved, award_level, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING achievement_id, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		a.EntityID, a.EntityType, a.Title, a.Description, a.DateAchieved, a.AwardLevel, a.Result,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert achievement: %w", err)
	}
	return nil
}

func (r *postgresAchievementRepository) GetByID(ctx context.Context, id int) (*models.Achievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM achievements a WHERE a.achievement_id = $1`

	var a models.Achievement
	if err := r.db.QueryRowContext(ctx, query, id).Scan(achievementDest(&a)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAchievementNotFound
		}
		return nil, fmt.Errorf("failed to get achievement %d: %w", id, err)
	}
	return &a, nil
}

func (r *postgresAchievementRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM achievements WHERE achievement_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete achievement %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrAchievementNotFound)
}

func (r *postgresAchievementRepository) ListByEntity(ctx context.Context, entityType models.EntityType, entityID, page, limit int) ([]models.AchievementWithImages, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM achievements WHERE entity_type = $1 AND entity_id = $2`
	if err := r.db.QueryRowContext(ctx, countQuery, entityType, entityID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count achievements: %w", err)
	}

	query := `
		SELECT ` + achievementColumns + `,
		       json_agg(json_build_object(
		           'id', i.id,
		           'image_id', i.cloudflare_image_id,
		           'achievement_id', i.achievement_id,
		           'user_id', i.user_id,
		           'team_id', i.team_id,
		           'image_url', i.image_url,
		           'avatar_url', i.avatar_url,
		           'thumbnail_url', i.thumbnail_url,
		           'created_at', i.created_at
		       ) ORDER BY i.id) FILTER (WHERE i.id IS NOT NULL)
		FROM achievements a
		LEFT JOIN images i ON i.achievement_id = a.achievement_id
		WHERE a.entity_type = $1 AND a.entity_id = $2
		GROUP BY a.achievement_id
		ORDER BY a.date_achieved DESC, a.achievement_id DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, entityType, entityID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	achievements := make([]models.AchievementWithImages, 0)
	for rows.Next() {
		var a models.AchievementWithImages
		var images jsonList[models.Image]
		if err := rows.Scan(append(achievementDest(&a.Achievement), &images)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan achievement row: %w", err)
		}
		a.Images = images
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating achievement rows: %w", err)
	}
	return achievements, total, nil
}
