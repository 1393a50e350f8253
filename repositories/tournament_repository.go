package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	GetDetails(ctx context.Context, id int) (*models.TournamentDetails, error)
	List(ctx context.Context, filter models.TournamentFilter) ([]models.Tournament, error)
	ListByOrganiser(ctx context.Context, filter models.OrganiserTournamentFilter) ([]models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `t.id, t.title, t.description, t.sport, t.type, t.gender, t.location, t.entries,
	t.entry_fee, t.total_prize_money, t.first_prize, t.second_prize, t.third_prize, t.payment_type, t.manage_type,
	t.entries_close, t.start_date, t.end_date, t.created_by_user_id, t.approved, t.featured, t.country, t.state,
	t.region, t.max_entries, t.entry_type, t.hero_image, t.thumbnail_image, t.image_id, t.created_at`

func tournamentDest(t *models.Tournament) []interface{} {
	return []interface{}{
		&t.ID, &t.Title, &t.Description, &t.Sport, &t.Type, &t.Gender, &t.Location, &t.Entries,
		&t.EntryFee, &t.TotalPrizeMoney, &t.FirstPrize, &t.SecondPrize, &t.ThirdPrize, &t.PaymentType, &t.ManageType,
		&t.EntriesClose, &t.StartDate, &t.EndDate, &t.CreatedByUserID, &t.Approved, &t.Featured, &t.Country, &t.State,
		&t.Region, &t.MaxEntries, &t.EntryType, &t.HeroImage, &t.ThumbnailImage, &t.ImageID, &t.CreatedAt,
	}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (title, description, sport, type, gender, location, entries, entry_fee,
		                         total_prize_money, first_prize, second_prize, third_prize, payment_type,
		                         manage_type, entries_close, start_date, end_date, created_by_user_id,
		                         country, state, region, max_entries, entry_type, hero_image, thumbnail_image, image_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		        $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING id, approved, featured, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Title, t.Description, t.Sport, t.Type, t.Gender, t.Location, t.Entries, t.EntryFee,
		t.TotalPrizeMoney, t.FirstPrize, t.SecondPrize, t.ThirdPrize, t.PaymentType,
		t.ManageType, t.EntriesClose, t.StartDate, t.EndDate, t.CreatedByUserID,
		t.Country, t.State, t.Region, t.MaxEntries, t.EntryType, t.HeroImage, t.ThumbnailImage, t.ImageID,
	).Scan(&t.ID, &t.Approved, &t.Featured, &t.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to insert tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments t WHERE t.id = $1`

	var t models.Tournament
	if err := executor(r.db, exec).QueryRowContext(ctx, query, id).Scan(tournamentDest(&t)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return &t, nil
}

// GetDetails resolves the tournament with its entry count and the organiser's profile.
// The organiser's club comes from players_data or organisers_data depending on user_type.
func (r *postgresTournamentRepository) GetDetails(ctx context.Context, id int) (*models.TournamentDetails, error) {
	query := `
		SELECT ` + tournamentColumns + `,
		       (SELECT COUNT(*) FROM entries e WHERE e.tournament_id = t.id),
		       u.id, u.name, u.email, u.avatar_url, u.user_type,
		       CASE WHEN u.user_type = 'player' THEN p.club ELSE o.club END,
		       ` + clubColumns + `
		FROM tournaments t
		LEFT JOIN users u ON u.id = t.created_by_user_id
		LEFT JOIN players_data p ON p.user_id = u.id AND u.user_type = 'player'
		LEFT JOIN organisers_data o ON o.user_id = u.id AND u.user_type = 'organiser'
		LEFT JOIN clubs c ON c.club_id = COALESCE(p.club_id, o.club_id)
		WHERE t.id = $1`

	var d models.TournamentDetails
	var orgID sql.NullInt64
	var orgName, orgEmail, orgType sql.NullString
	var orgAvatar, orgClub *string
	var club nullableClub

	dest := append(tournamentDest(&d.Tournament), &d.EntryCount,
		&orgID, &orgName, &orgEmail, &orgAvatar, &orgType, &orgClub,
		&club.ID, &club.Name, &club.Sport, &club.Address, &club.Country, &club.State, &club.Region,
		&club.AvatarURL, &club.BannerURL, &club.Description, &club.CreatedAt)
	if err := r.db.QueryRowContext(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	if orgID.Valid {
		d.OrganizerDetails = &models.OrganizerDetails{
			ID:        int(orgID.Int64),
			Name:      orgName.String,
			Email:     orgEmail.String,
			AvatarURL: orgAvatar,
			UserType:  models.UserType(orgType.String),
			Club:      orgClub,
			ClubData:  club.toModel(),
		}
	}
	return &d, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter models.TournamentFilter) ([]models.Tournament, error) {
	var b filterBuilder
	b.addIf(filter.Search != "", "(t.title ILIKE ? OR t.description ILIKE ? OR t.location ILIKE ?)", like(filter.Search))
	b.addIf(filter.Sport != "", "lower(t.sport) = lower(?)", filter.Sport)
	b.addIf(filter.Type != "", "lower(t.type) = lower(?)", filter.Type)
	b.addIf(filter.Gender != "", "lower(t.gender) = lower(?)", filter.Gender)
	b.addIf(filter.Country != "", "t.country = ?", filter.Country)
	b.addIf(filter.State != "", "t.state = ?", filter.State)
	b.addIf(filter.Region != "", "t.region = ?", filter.Region)
	if filter.StartDate != nil {
		b.add("t.start_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		b.add("t.end_date <= ?", *filter.EndDate)
	}
	if filter.MinPrizeMoney != nil {
		b.add("t.total_prize_money >= ?", *filter.MinPrizeMoney)
	}
	if filter.MaxPrizeMoney != nil {
		b.add("t.total_prize_money <= ?", *filter.MaxPrizeMoney)
	}

	query := `SELECT ` + tournamentColumns + ` FROM tournaments t` + b.where() + ` ORDER BY t.start_date ASC, t.id ASC`
	return r.query(ctx, query, b.args...)
}

func (r *postgresTournamentRepository) ListByOrganiser(ctx context.Context, filter models.OrganiserTournamentFilter) ([]models.Tournament, error) {
	var b filterBuilder
	b.add("t.created_by_user_id = ?", filter.OrganiserID)
	b.addIf(filter.Gender != "", "lower(t.gender) = lower(?)", filter.Gender)
	b.addIf(filter.Type != "", "lower(t.type) = lower(?)", filter.Type)
	b.addIf(filter.Search != "", "(t.title ILIKE ? OR t.location ILIKE ?)", like(filter.Search))
	if filter.Since != nil {
		b.add("t.start_date >= ?", *filter.Since)
	}
	if filter.Until != nil {
		b.add("t.start_date <= ?", *filter.Until)
	}

	query := `SELECT ` + tournamentColumns + ` FROM tournaments t` + b.where() + ` ORDER BY t.start_date DESC, t.id DESC`
	return r.query(ctx, query, b.args...)
}

func (r *postgresTournamentRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(tournamentDest(&t)...); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}
