package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/models"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamMemberNotFound = errors.New("team member not found")
	ErrTeamMemberConflict = errors.New("user is already a member of this team")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	AddMember(ctx context.Context, exec SQLExecutor, member *models.TeamMember) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	List(ctx context.Context, filter models.TeamFilter) ([]models.TeamListItem, error)
	GetDetails(ctx context.Context, id int) (*models.TeamDetails, error)
	ListByMember(ctx context.Context, filter models.MyTeamsFilter) ([]models.MyTeam, int, error)
	UpdateMemberStatus(ctx context.Context, teamID, userID int, status models.MemberStatus) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `t.team_id, t.team_name, t.sport_id, t.team_type, t.team_gender, t.team_status,
	t.created_by_user_id, t.club_id, t.club, t.country, t.state, t.region, t.avatar_url, t.main_image_url,
	t.description, t.total_prize_money, t.first_place, t.second_place, t.third_place, t.created_at`

func teamDest(t *models.Team) []interface{} {
	return []interface{}{
		&t.ID, &t.Name, &t.SportID, &t.TeamType, &t.TeamGender, &t.TeamStatus,
		&t.CreatedByUserID, &t.ClubID, &t.Club, &t.Country, &t.State, &t.Region, &t.AvatarURL, &t.MainImageURL,
		&t.Description, &t.TotalPrizeMoney, &t.FirstPlace, &t.SecondPlace, &t.ThirdPlace, &t.CreatedAt,
	}
}

// memberJSON aggregates the members of team t into a JSON array; an empty team yields NULL.
const memberJSON = `json_agg(json_build_object(
		'id', tm.id,
		'team_id', tm.team_id,
		'user_id', tm.user_id,
		'name', u.name,
		'email', u.email,
		'avatar_url', u.avatar_url,
		'status', tm.status,
		'position', tm.position,
		'club', tm.club,
		'joined_at', tm.joined_at
	) ORDER BY tm.joined_at, tm.id)`

// awardLevelOrder ranks achievements by prestige for ORDER BY clauses.
var awardLevelOrder = func() string {
	levels := make([]string, 0, len(models.AwardLevelRank))
	for level := range models.AwardLevelRank {
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool { return models.AwardLevelRank[levels[i]] < models.AwardLevelRank[levels[j]] })

	var b strings.Builder
	b.WriteString("CASE lower(a.award_level)")
	for _, level := range levels {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", level, models.AwardLevelRank[level])
	}
	fmt.Fprintf(&b, " ELSE %d END", len(levels)+1)
	return b.String()
}()

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `
		INSERT INTO teams (team_name, sport_id, team_type, team_gender, created_by_user_id, club_id, club,
		                   country, state, region, avatar_url, main_image_url, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING team_id, team_status, total_prize_money, first_place, second_place, third_place, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		team.Name, team.SportID, team.TeamType, team.TeamGender, team.CreatedByUserID, team.ClubID, team.Club,
		team.Country, team.State, team.Region, team.AvatarURL, team.MainImageURL, team.Description,
	).Scan(&team.ID, &team.TeamStatus, &team.TotalPrizeMoney, &team.FirstPlace, &team.SecondPlace, &team.ThirdPlace, &team.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) AddMember(ctx context.Context, exec SQLExecutor, member *models.TeamMember) error {
	query := `
		INSERT INTO team_members (team_id, temp_team_id, user_id, status, position, club)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, joined_at`

	status := member.Status
	if status == "" {
		status = models.MemberStatusPending
	}

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		member.TeamID, member.TempTeamID, member.UserID, status, member.Position, member.Club,
	).Scan(&member.ID, &member.JoinedAt)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return ErrTeamMemberConflict
		}
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to insert team member: %w", err)
	}
	member.Status = status
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams t WHERE t.team_id = $1`

	var team models.Team
	if err := executor(r.db, exec).QueryRowContext(ctx, query, id).Scan(teamDest(&team)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return &team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, filter models.TeamFilter) ([]models.TeamListItem, error) {
	var b filterBuilder
	b.addIf(filter.Search != "", "t.team_name ILIKE ?", like(filter.Search))
	b.addIf(filter.SportID > 0, "t.sport_id = ?", filter.SportID)
	b.addIf(filter.Type != "", "lower(t.team_type) = lower(?)", filter.Type)
	b.addIf(filter.Gender != "", "lower(t.team_gender) = lower(?)", filter.Gender)
	b.addIf(filter.Country != "", "t.country = ?", filter.Country)
	b.addIf(filter.State != "", "t.state = ?", filter.State)
	b.addIf(filter.Region != "", "t.region = ?", filter.Region)

	query := `
		SELECT ` + teamColumns + `, s.name, COALESCE(m.member_count, 0), m.members
		FROM teams t
		LEFT JOIN sports s ON s.id = t.sport_id
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS member_count, ` + memberJSON + ` AS members
			FROM team_members tm
			JOIN users u ON u.id = tm.user_id
			WHERE tm.team_id = t.team_id
		) m ON TRUE` + b.where() + `
		ORDER BY t.created_at DESC, t.team_id DESC`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.TeamListItem, 0)
	for rows.Next() {
		var item models.TeamListItem
		var members jsonList[models.TeamMember]
		dest := append(teamDest(&item.Team), &item.SportName, &item.MemberCount, &members)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		item.TeamMembers = members
		teams = append(teams, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) GetDetails(ctx context.Context, id int) (*models.TeamDetails, error) {
	query := `
		SELECT ` + teamColumns + `, s.name,
		       mgr.id, mgr.name, mgr.email, mgr.avatar_url,
		       ` + clubColumns + `
		FROM teams t
		LEFT JOIN sports s ON s.id = t.sport_id
		LEFT JOIN users mgr ON mgr.id = t.created_by_user_id
		LEFT JOIN clubs c ON c.club_id = t.club_id
		WHERE t.team_id = $1`

	var details models.TeamDetails
	var mgrID sql.NullInt64
	var mgrName, mgrEmail sql.NullString
	var mgrAvatar *string
	var club nullableClub

	dest := append(teamDest(&details.Team), &details.SportName, &mgrID, &mgrName, &mgrEmail, &mgrAvatar,
		&club.ID, &club.Name, &club.Sport, &club.Address, &club.Country, &club.State, &club.Region,
		&club.AvatarURL, &club.BannerURL, &club.Description, &club.CreatedAt)
	if err := r.db.QueryRowContext(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	if mgrID.Valid {
		details.Manager = &models.TeamManager{ID: int(mgrID.Int64), Name: mgrName.String, Email: mgrEmail.String, AvatarURL: mgrAvatar}
	}
	details.ClubDetails = club.toModel()

	members, err := r.listMemberDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	details.Members = members
	return &details, nil
}

func (r *postgresTeamRepository) listMemberDetails(ctx context.Context, teamID int) ([]models.TeamMemberDetails, error) {
	query := `
		SELECT tm.id, tm.team_id, tm.user_id, u.name, u.email, COALESCE(u.avatar_url, $2), tm.status, tm.position,
		       COALESCE(tm.club, p.club), tm.joined_at,
		       ` + clubColumns + `,
		       a.achievement_id, a.entity_id, a.entity_type, a.title, a.description, a.date_achieved,
		       a.award_level, a.result, a.created_at
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		LEFT JOIN players_data p ON p.user_id = tm.user_id
		LEFT JOIN clubs c ON c.club_id = p.club_id
		LEFT JOIN LATERAL (
			SELECT a.* FROM achievements a
			WHERE a.entity_type = 'player' AND a.entity_id = tm.user_id
			ORDER BY ` + awardLevelOrder + `, a.date_achieved DESC
			LIMIT 1
		) a ON TRUE
		WHERE tm.team_id = $1
		ORDER BY tm.joined_at, tm.id`

	rows, err := r.db.QueryContext(ctx, query, teamID, constants.DefaultMemberAvatar)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of team %d: %w", teamID, err)
	}
	defer rows.Close()

	members := make([]models.TeamMemberDetails, 0)
	for rows.Next() {
		var m models.TeamMemberDetails
		var club nullableClub
		var ach nullableAchievement
		err := rows.Scan(
			&m.ID, &m.TeamID, &m.UserID, &m.Name, &m.Email, &m.AvatarURL, &m.Status, &m.Position,
			&m.Club, &m.JoinedAt,
			&club.ID, &club.Name, &club.Sport, &club.Address, &club.Country, &club.State, &club.Region,
			&club.AvatarURL, &club.BannerURL, &club.Description, &club.CreatedAt,
			&ach.ID, &ach.EntityID, &ach.EntityType, &ach.Title, &ach.Description, &ach.DateAchieved,
			&ach.AwardLevel, &ach.Result, &ach.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member row: %w", err)
		}
		m.ClubDetails = club.toModel()
		m.TopAchievement = ach.toModel()
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team member rows: %w", err)
	}
	return members, nil
}

func (r *postgresTeamRepository) ListByMember(ctx context.Context, filter models.MyTeamsFilter) ([]models.MyTeam, int, error) {
	statuses := make([]string, 0, len(filter.MemberStatuses))
	for _, s := range filter.MemberStatuses {
		statuses = append(statuses, string(s))
	}

	var b filterBuilder
	b.add("tm.user_id = ?", filter.UserID)
	b.add("tm.status = ANY(?)", pq.Array(statuses))
	b.addIf(filter.TeamName != "", "t.team_name ILIKE ?", like(filter.TeamName))
	b.addIf(filter.TeamStatus != "", "t.team_status = ?", filter.TeamStatus)
	b.addIf(filter.TeamType != "", "lower(t.team_type) = lower(?)", filter.TeamType)
	b.addIf(filter.TeamGender != "", "lower(t.team_gender) = lower(?)", filter.TeamGender)
	b.addIf(filter.SportID > 0, "t.sport_id = ?", filter.SportID)

	from := `
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.team_id
		LEFT JOIN sports s ON s.id = t.sport_id` + b.where()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count teams of user %d: %w", filter.UserID, err)
	}

	query := `
		SELECT ` + teamColumns + `, s.name, tm.status,
		       (SELECT COUNT(*) FROM team_members x WHERE x.team_id = t.team_id AND x.status = 'approved')` + from + `
		ORDER BY t.created_at DESC, t.team_id DESC
		LIMIT ` + b.next(filter.Limit) + ` OFFSET ` + b.next((filter.Page-1)*filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list teams of user %d: %w", filter.UserID, err)
	}
	defer rows.Close()

	teams := make([]models.MyTeam, 0)
	for rows.Next() {
		var t models.MyTeam
		dest := append(teamDest(&t.Team), &t.SportName, &t.MemberStatus, &t.MemberCount)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, total, nil
}

func (r *postgresTeamRepository) UpdateMemberStatus(ctx context.Context, teamID, userID int, status models.MemberStatus) error {
	query := `UPDATE team_members SET status = $1 WHERE team_id = $2 AND user_id = $3`

	result, err := r.db.ExecContext(ctx, query, status, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of user %d in team %d: %w", userID, teamID, err)
	}
	return checkAffectedRows(result, ErrTeamMemberNotFound)
}
