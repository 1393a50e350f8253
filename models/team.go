package models

import "time"

type MemberStatus string

const (
	MemberStatusApproved MemberStatus = "approved"
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusDeclined MemberStatus = "declined"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberStatusApproved, MemberStatusPending, MemberStatusDeclined:
		return true
	}
	return false
}

type Team struct {
	ID              int       `json:"team_id"`
	Name            string    `json:"team_name"`
	SportID         int       `json:"sport_id"`
	TeamType        string    `json:"team_type"`
	TeamGender      string    `json:"team_gender"`
	TeamStatus      string    `json:"team_status"`
	CreatedByUserID int       `json:"created_by_user_id"`
	ClubID          *int      `json:"club_id,omitempty"`
	Club            *string   `json:"club,omitempty"`
	Country         *string   `json:"country,omitempty"`
	State           *string   `json:"state,omitempty"`
	Region          *string   `json:"region,omitempty"`
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	MainImageURL    *string   `json:"main_image_url,omitempty"`
	Description     *string   `json:"description,omitempty"`
	TotalPrizeMoney float64   `json:"total_prize_money"`
	FirstPlace      int       `json:"first_place"`
	SecondPlace     int       `json:"second_place"`
	ThirdPlace      int       `json:"third_place"`
	CreatedAt       time.Time `json:"created_at"`
}

// TeamMember is a membership row of a persistent or temporary team.
type TeamMember struct {
	ID         int          `json:"id,omitempty"`
	TeamID     *int         `json:"team_id,omitempty"`
	TempTeamID *int         `json:"temp_team_id,omitempty"`
	UserID     int          `json:"user_id"`
	Name       string       `json:"name,omitempty"`
	Email      string       `json:"email,omitempty"`
	AvatarURL  *string      `json:"avatar_url,omitempty"`
	Status     MemberStatus `json:"status,omitempty"`
	Position   *string      `json:"position,omitempty"`
	Club       *string      `json:"club,omitempty"`
	JoinedAt   time.Time    `json:"joined_at"`
}

type TeamWithMembers struct {
	Team
	TeamMembers []TeamMember `json:"team_members"`
}

type TeamListItem struct {
	Team
	SportName   *string      `json:"sport_name,omitempty"`
	MemberCount int          `json:"member_count"`
	TeamMembers []TeamMember `json:"team_members"`
}

type TeamFilter struct {
	Search  string
	SportID int
	Type    string
	Gender  string
	Country string
	State   string
	Region  string
}

type TeamManager struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type TeamMemberDetails struct {
	TeamMember
	ClubDetails    *Club        `json:"club_details"`
	TopAchievement *Achievement `json:"top_achievement"`
}

type TeamDetails struct {
	Team
	SportName   *string             `json:"sport_name,omitempty"`
	Members     []TeamMemberDetails `json:"members"`
	Manager     *TeamManager        `json:"manager"`
	ClubDetails *Club               `json:"club_details"`
}

type MyTeam struct {
	Team
	SportName    *string      `json:"sport_name,omitempty"`
	MemberStatus MemberStatus `json:"member_status"`
	MemberCount  int          `json:"member_count"`
}

type MyTeamsFilter struct {
	UserID         int
	TeamName       string
	TeamStatus     string
	TeamType       string
	TeamGender     string
	SportID        int
	MemberStatuses []MemberStatus
	Page           int
	Limit          int
}

// TemporaryTeam is a team that exists for a single tournament entry only.
type TemporaryTeam struct {
	ID              int       `json:"temp_team_id"`
	TournamentID    int       `json:"tournament_id"`
	Name            string    `json:"team_name"`
	Club            *string   `json:"club,omitempty"`
	CreatedByUserID *int      `json:"created_by_user_id,omitempty"`
	SportID         *int      `json:"sport_id,omitempty"`
	TeamType        string    `json:"team_type"`
	TeamGender      *string   `json:"team_gender,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
