package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/models"
)

var ErrClubNotFound = errors.New("club not found")

type ClubRepository interface {
	GetByID(ctx context.Context, id int) (*models.Club, error)
	List(ctx context.Context, filter models.ClubFilter) ([]models.Club, error)
	UpsertAdmin(ctx context.Context, admin *models.ClubAdmin) error
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

const clubColumns = `c.club_id, c.name, c.sport, c.address, c.country, c.state, c.region,
	c.avatar_url, c.banner_url, c.description, c.created_at`

func scanClub(row interface{ Scan(...interface{}) error }, c *models.Club) error {
	return row.Scan(&c.ID, &c.Name, &c.Sport, &c.Address, &c.Country, &c.State, &c.Region,
		&c.AvatarURL, &c.BannerURL, &c.Description, &c.CreatedAt)
}

// nullableClub receives club columns from a LEFT JOIN.
type nullableClub struct {
	ID          sql.NullInt64
	Name        sql.NullString
	Sport       *string
	Address     *string
	Country     *string
	State       *string
	Region      *string
	AvatarURL   *string
	BannerURL   *string
	Description *string
	CreatedAt   sql.NullTime
}

func (c nullableClub) toModel() *models.Club {
	if !c.ID.Valid {
		return nil
	}
	return &models.Club{
		ID:          int(c.ID.Int64),
		Name:        c.Name.String,
		Sport:       c.Sport,
		Address:     c.Address,
		Country:     c.Country,
		State:       c.State,
		Region:      c.Region,
		AvatarURL:   c.AvatarURL,
		BannerURL:   c.BannerURL,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Time,
	}
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs c WHERE c.club_id = $1`

	var club models.Club
	if err := scanClub(r.db.QueryRowContext(ctx, query, id), &club); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club %d: %w", id, err)
	}
	return &club, nil
}

func (r *postgresClubRepository) List(ctx context.Context, filter models.ClubFilter) ([]models.Club, error) {
	var b filterBuilder
	b.addIf(filter.Name != "", "c.name ILIKE ?", like(filter.Name))
	b.addIf(filter.Sport != "", "c.sport = ?", filter.Sport)
	b.addIf(filter.Country != "", "c.country = ?", filter.Country)
	b.addIf(filter.State != "", "c.state = ?", filter.State)
	b.addIf(filter.Region != "", "c.region = ?", filter.Region)

	query := `SELECT ` + clubColumns + ` FROM clubs c` + b.where() + ` ORDER BY c.name ASC`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	defer rows.Close()

	clubs := make([]models.Club, 0)
	for rows.Next() {
		var c models.Club
		if err := scanClub(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan club row: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating club rows: %w", err)
	}
	return clubs, nil
}

func (r *postgresClubRepository) UpsertAdmin(ctx context.Context, admin *models.ClubAdmin) error {
	query := `
		INSERT INTO club_admins (club_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (club_id, user_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, admin.ClubID, admin.UserID, admin.Role).Scan(&admin.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to upsert club admin: %w", err)
	}
	return nil
}
