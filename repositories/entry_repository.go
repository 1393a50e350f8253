package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nevrodda11/torny-aws-api/models"
)

var (
	ErrEntryNotFound       = errors.New("entry not found")
	ErrTeamAlreadyEntered  = errors.New("team is already entered in this tournament")
	ErrUserAlreadyEntered  = errors.New("user is already entered in this tournament")
	ErrTemporaryTeamExists = errors.New("team name already exists in this tournament")
	ErrReferenceIDConflict = errors.New("reference id already used in this tournament")
)

type EntryRepository interface {
	CreateTemporaryTeam(ctx context.Context, exec SQLExecutor, team *models.TemporaryTeam) error
	Create(ctx context.Context, exec SQLExecutor, entry *models.Entry) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.EntryDetails, error)
	IsUserEntered(ctx context.Context, tournamentID, userID int) (bool, error)
	UpdatePaymentStatus(ctx context.Context, tournamentID int, referenceID string, status models.PaymentStatus) error
}

type postgresEntryRepository struct {
	db *sql.DB
}

func NewPostgresEntryRepository(db *sql.DB) EntryRepository {
	return &postgresEntryRepository{db: db}
}

func (r *postgresEntryRepository) CreateTemporaryTeam(ctx context.Context, exec SQLExecutor, team *models.TemporaryTeam) error {
	query := `
		INSERT INTO temporary_teams (tournament_id, team_name, club, created_by_user_id, sport_id, team_type, team_gender,
		                             first_place, second_place, third_place, total_prize_money)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, 0, 0)
		RETURNING temp_team_id, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		team.TournamentID, team.Name, team.Club, team.CreatedByUserID, team.SportID, team.TeamType, team.TeamGender,
	).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return ErrTemporaryTeamExists
		}
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to insert temporary team: %w", err)
	}
	return nil
}

func (r *postgresEntryRepository) Create(ctx context.Context, exec SQLExecutor, entry *models.Entry) error {
	query := `
		INSERT INTO entries (tournament_id, team_id, temp_team_id, user_id, payment_status, reference_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, entry_date`

	status := entry.PaymentStatus
	if status == "" {
		status = models.PaymentStatusPending
	}

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		entry.TournamentID, entry.TeamID, entry.TempTeamID, entry.UserID, status, entry.ReferenceID,
	).Scan(&entry.ID, &entry.EntryDate)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return entryConflict(constraint)
		}
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	entry.PaymentStatus = status
	return nil
}

func entryConflict(constraint string) error {
	switch constraint {
	case "entries_tournament_reference_key":
		return ErrReferenceIDConflict
	case "entries_tournament_user_key":
		return ErrUserAlreadyEntered
	case "entries_tournament_temp_team_key":
		return ErrTemporaryTeamExists
	default:
		return ErrTeamAlreadyEntered
	}
}

// ListByTournament returns every entry of a tournament, newest first. Team and temporary
// entries carry their members; an individual entry carries the entrant as its only member.
func (r *postgresEntryRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.EntryDetails, error) {
	query := `
		SELECT e.id, e.tournament_id, e.team_id, e.temp_team_id, e.user_id, e.entry_date, e.payment_status,
		       e.reference_id,
		       CASE WHEN e.team_id IS NOT NULL THEN 'team'
		            WHEN e.temp_team_id IS NOT NULL THEN 'one-off'
		            ELSE 'individual' END,
		       COALESCE(t.team_name, tt.team_name),
		       COALESCE(t.team_type, tt.team_type),
		       COALESCE(t.club, tt.club, p.club),
		       CASE WHEN e.user_id IS NOT NULL THEN json_build_array(json_build_object(
		                'user_id', iu.id,
		                'name', iu.name,
		                'email', iu.email,
		                'avatar_url', iu.avatar_url,
		                'club', p.club))
		            ELSE m.members END
		FROM entries e
		LEFT JOIN teams t ON t.team_id = e.team_id
		LEFT JOIN temporary_teams tt ON tt.temp_team_id = e.temp_team_id
		LEFT JOIN users iu ON iu.id = e.user_id
		LEFT JOIN players_data p ON p.user_id = e.user_id
		LEFT JOIN LATERAL (
			SELECT json_agg(json_build_object(
				'user_id', u.id,
				'name', u.name,
				'email', u.email,
				'avatar_url', u.avatar_url,
				'position', tm.position,
				'club', tm.club,
				'status', tm.status
			) ORDER BY tm.joined_at, tm.id) AS members
			FROM team_members tm
			JOIN users u ON u.id = tm.user_id
			WHERE tm.team_id = e.team_id OR tm.temp_team_id = e.temp_team_id
		) m ON TRUE
		WHERE e.tournament_id = $1
		ORDER BY e.entry_date DESC, e.id DESC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries of tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	entries := make([]models.EntryDetails, 0)
	for rows.Next() {
		var d models.EntryDetails
		var members jsonList[models.EntryMember]
		err := rows.Scan(
			&d.ID, &d.TournamentID, &d.TeamID, &d.TempTeamID, &d.UserID, &d.EntryDate, &d.PaymentStatus,
			&d.ReferenceID, &d.EntryCategory, &d.TeamName, &d.TeamType, &d.Club, &members,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		d.ReferenceID = strings.TrimSpace(d.ReferenceID)
		d.Members = members
		entries = append(entries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}

// IsUserEntered reports whether the user entered directly or is an approved member of an entered team.
func (r *postgresEntryRepository) IsUserEntered(ctx context.Context, tournamentID, userID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM entries e
			WHERE e.tournament_id = $1
			  AND (e.user_id = $2
			       OR EXISTS (
			           SELECT 1 FROM team_members tm
			           WHERE tm.user_id = $2
			             AND tm.status = 'approved'
			             AND (tm.team_id = e.team_id OR tm.temp_team_id = e.temp_team_id)))
		)`

	var entered bool
	if err := r.db.QueryRowContext(ctx, query, tournamentID, userID).Scan(&entered); err != nil {
		return false, fmt.Errorf("failed to check entry of user %d in tournament %d: %w", userID, tournamentID, err)
	}
	return entered, nil
}

func (r *postgresEntryRepository) UpdatePaymentStatus(ctx context.Context, tournamentID int, referenceID string, status models.PaymentStatus) error {
	query := `UPDATE entries SET payment_status = $1 WHERE tournament_id = $2 AND reference_id = $3`

	result, err := r.db.ExecContext(ctx, query, status, tournamentID, referenceID)
	if err != nil {
		return fmt.Errorf("failed to update payment status of entry %s: %w", referenceID, err)
	}
	return checkAffectedRows(result, ErrEntryNotFound)
}
