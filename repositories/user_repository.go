package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
)

// UserUpdate holds optional user fields; nil leaves the stored value unchanged.
type UserUpdate struct {
	Name      *string
	Phone     *string
	AvatarURL *string
	BannerURL *string
	About     *string
	Country   *string
	State     *string
	Region    *string
}

type PlayerProfileUpdate struct {
	Sport  *string
	Club   *string
	ClubID *int
	Gender *string
}

type OrganiserProfileUpdate struct {
	Club          *string
	ClubID        *int
	OrganiserType *string
	BankName      *string
	AccountName   *string
	BSB           *string
	AccountNumber *string
}

type UserRepository interface {
	Create(ctx context.Context, exec SQLExecutor, user *models.User) error
	CreatePlayerProfile(ctx context.Context, exec SQLExecutor, userID int, p *models.PlayerProfile) error
	CreateOrganiserProfile(ctx context.Context, exec SQLExecutor, userID int, p *models.OrganiserProfile) error
	UpsertPlayerData(ctx context.Context, exec SQLExecutor, userID int, club, sport *string, gender string) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.User, error)
	GetByEmail(ctx context.Context, exec SQLExecutor, email string) (*models.User, error)
	GetDetails(ctx context.Context, id int) (*models.UserDetails, error)
	Update(ctx context.Context, exec SQLExecutor, id int, upd UserUpdate) error
	UpdatePlayerProfile(ctx context.Context, exec SQLExecutor, userID int, upd PlayerProfileUpdate) error
	UpdateOrganiserProfile(ctx context.Context, exec SQLExecutor, userID int, upd OrganiserProfileUpdate) error
	ListPlayers(ctx context.Context, filter models.PlayerFilter) ([]models.PlayerSummary, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `u.id, u.name, u.email, u.phone, u.password_hash, u.user_type, u.avatar_url, u.banner_url,
	u.about, u.country, u.state, u.region, u.created_at, u.updated_at`

func scanUser(row interface{ Scan(...interface{}) error }, u *models.User, extra ...interface{}) error {
	dest := []interface{}{
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.UserType, &u.AvatarURL, &u.BannerURL,
		&u.About, &u.Country, &u.State, &u.Region, &u.CreatedAt, &u.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *postgresUserRepository) Create(ctx context.Context, exec SQLExecutor, user *models.User) error {
	query := `
		INSERT INTO users (name, email, phone, password_hash, user_type, avatar_url, country, state, region)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.UserType,
		user.AvatarURL,
		user.Country,
		user.State,
		user.Region,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if c, ok := uniqueViolation(err); ok && c == "users_email_key" {
			return ErrUserEmailConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) CreatePlayerProfile(ctx context.Context, exec SQLExecutor, userID int, p *models.PlayerProfile) error {
	query := `INSERT INTO players_data (user_id, sport, club, club_id, gender) VALUES ($1, $2, $3, $4, $5)`
	if _, err := executor(r.db, exec).ExecContext(ctx, query, userID, p.Sport, p.Club, p.ClubID, p.Gender); err != nil {
		return fmt.Errorf("failed to insert player profile for user %d: %w", userID, err)
	}
	return nil
}

func (r *postgresUserRepository) CreateOrganiserProfile(ctx context.Context, exec SQLExecutor, userID int, p *models.OrganiserProfile) error {
	query := `
		INSERT INTO organisers_data (user_id, club, club_id, organiser_type, bank_name, account_name, bsb, account_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := executor(r.db, exec).ExecContext(ctx, query,
		userID, p.Club, p.ClubID, p.OrganiserType, p.BankName, p.AccountName, p.BSB, p.AccountNumber)
	if err != nil {
		return fmt.Errorf("failed to insert organiser profile for user %d: %w", userID, err)
	}
	return nil
}

func (r *postgresUserRepository) UpsertPlayerData(ctx context.Context, exec SQLExecutor, userID int, club, sport *string, gender string) error {
	query := `
		INSERT INTO players_data (user_id, club, sport, gender)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET club = EXCLUDED.club, sport = EXCLUDED.sport, gender = EXCLUDED.gender`
	if _, err := executor(r.db, exec).ExecContext(ctx, query, userID, club, sport, gender); err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to upsert player data for user %d: %w", userID, err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	var user models.User
	if err := scanUser(executor(r.db, exec).QueryRowContext(ctx, query, id), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, exec SQLExecutor, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE lower(u.email) = lower($1)`

	var user models.User
	if err := scanUser(executor(r.db, exec).QueryRowContext(ctx, query, email), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *postgresUserRepository) GetDetails(ctx context.Context, id int) (*models.UserDetails, error) {
	user, err := r.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	details := &models.UserDetails{User: *user}
	var achievements, images jsonRaw

	switch user.UserType {
	case models.UserTypePlayer:
		query := `
			SELECT p.sport, p.club, p.club_id, p.gender, p.achievements, p.images,
			       c.club_id, c.name, c.sport, c.address, c.country, c.state, c.region,
			       c.avatar_url, c.banner_url, c.description, c.created_at
			FROM users u
			LEFT JOIN players_data p ON p.user_id = u.id
			LEFT JOIN clubs c ON c.club_id = p.club_id
			WHERE u.id = $1`

		profile := &models.PlayerProfile{}
		var club nullableClub
		err = r.db.QueryRowContext(ctx, query, id).Scan(
			&profile.Sport, &profile.Club, &profile.ClubID, &profile.Gender, &achievements, &images,
			&club.ID, &club.Name, &club.Sport, &club.Address, &club.Country, &club.State, &club.Region,
			&club.AvatarURL, &club.BannerURL, &club.Description, &club.CreatedAt,
		)
		profile.ClubData = club.toModel()
		details.Profile = profile
	default:
		query := `
			SELECT o.club, o.club_id, o.organiser_type, o.bank_name, o.account_name, o.bsb, o.account_number,
			       o.achievements, o.images
			FROM users u
			LEFT JOIN organisers_data o ON o.user_id = u.id
			WHERE u.id = $1`

		profile := &models.OrganiserProfile{}
		err = r.db.QueryRowContext(ctx, query, id).Scan(
			&profile.Club, &profile.ClubID, &profile.OrganiserType, &profile.BankName, &profile.AccountName,
			&profile.BSB, &profile.AccountNumber, &achievements, &images,
		)
		details.Profile = profile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile for user %d: %w", id, err)
	}

	details.Achievements = []byte(achievements)
	details.Images = []byte(images)
	return details, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, exec SQLExecutor, id int, upd UserUpdate) error {
	query := `
		UPDATE users SET
			name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			avatar_url = COALESCE($3, avatar_url),
			banner_url = COALESCE($4, banner_url),
			about = COALESCE($5, about),
			country = COALESCE($6, country),
			state = COALESCE($7, state),
			region = COALESCE($8, region),
			updated_at = NOW()
		WHERE id = $9`

	result, err := executor(r.db, exec).ExecContext(ctx, query,
		upd.Name, upd.Phone, upd.AvatarURL, upd.BannerURL, upd.About, upd.Country, upd.State, upd.Region, id)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdatePlayerProfile(ctx context.Context, exec SQLExecutor, userID int, upd PlayerProfileUpdate) error {
	query := `
		INSERT INTO players_data (user_id, sport, club, club_id, gender)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			sport = COALESCE(EXCLUDED.sport, players_data.sport),
			club = COALESCE(EXCLUDED.club, players_data.club),
			club_id = COALESCE(EXCLUDED.club_id, players_data.club_id),
			gender = COALESCE(EXCLUDED.gender, players_data.gender)`

	if _, err := executor(r.db, exec).ExecContext(ctx, query, userID, upd.Sport, upd.Club, upd.ClubID, upd.Gender); err != nil {
		return fmt.Errorf("failed to update player profile for user %d: %w", userID, err)
	}
	return nil
}

func (r *postgresUserRepository) UpdateOrganiserProfile(ctx context.Context, exec SQLExecutor, userID int, upd OrganiserProfileUpdate) error {
	query := `
		INSERT INTO organisers_data (user_id, club, club_id, organiser_type, bank_name, account_name, bsb, account_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			club = COALESCE(EXCLUDED.club, organisers_data.club),
			club_id = COALESCE(EXCLUDED.club_id, organisers_data.club_id),
			organiser_type = COALESCE(EXCLUDED.organiser_type, organisers_data.organiser_type),
			bank_name = COALESCE(EXCLUDED.bank_name, organisers_data.bank_name),
			account_name = COALESCE(EXCLUDED.account_name, organisers_data.account_name),
			bsb = COALESCE(EXCLUDED.bsb, organisers_data.bsb),
			account_number = COALESCE(EXCLUDED.account_number, organisers_data.account_number)`

	_, err := executor(r.db, exec).ExecContext(ctx, query,
		userID, upd.Club, upd.ClubID, upd.OrganiserType, upd.BankName, upd.AccountName, upd.BSB, upd.AccountNumber)
	if err != nil {
		return fmt.Errorf("failed to update organiser profile for user %d: %w", userID, err)
	}
	return nil
}

func (r *postgresUserRepository) ListPlayers(ctx context.Context, filter models.PlayerFilter) ([]models.PlayerSummary, error) {
	var b filterBuilder
	b.add("u.user_type = ?", models.UserTypePlayer)
	b.addIf(filter.NameSearch != "", "u.name ILIKE ?", like(filter.NameSearch))
	b.addIf(filter.Sport != "", "p.sport = ?", filter.Sport)
	b.addIf(filter.Country != "", "u.country = ?", filter.Country)
	b.addIf(filter.State != "", "u.state = ?", filter.State)
	b.addIf(filter.Region != "", "u.region = ?", filter.Region)

	query := `
		SELECT u.id, u.name, u.avatar_url, u.country, u.state, u.region, p.sport, p.club, p.gender
		FROM users u
		LEFT JOIN players_data p ON p.user_id = u.id` + b.where() + `
		ORDER BY u.name ASC`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.PlayerSummary, 0)
	for rows.Next() {
		var p models.PlayerSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.AvatarURL, &p.Country, &p.State, &p.Region, &p.Sport, &p.Club, &p.Gender); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}
