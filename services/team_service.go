package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/db"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/storage"
	"github.com/nevrodda11/torny-aws-api/utils"
	"github.com/rs/zerolog"
)

type CreateTeamInput struct {
	TeamName        string  `json:"team_name"`
	SportID         int     `json:"sport_id"`
	CreatedByUserID int     `json:"created_by_user_id"`
	TeamType        string  `json:"team_type"`
	TeamGender      string  `json:"team_gender"`
	ClubID          *int    `json:"club_id"`
	Club            *string `json:"club"`
	Country         *string `json:"country"`
	State           *string `json:"state"`
	Region          *string `json:"region"`
	Description     *string `json:"description"`
	AvatarBase64    *string `json:"avatar_base64"`
	MainImageBase64 *string `json:"main_image_base64"`
	MemberIDs       []int   `json:"member_ids"`
}

type TeamService interface {
	Create(ctx context.Context, input CreateTeamInput) (*models.TeamWithMembers, error)
	List(ctx context.Context, filter models.TeamFilter) ([]models.TeamListItem, error)
	GetDetails(ctx context.Context, id int) (*models.TeamDetails, error)
	ListMine(ctx context.Context, filter models.MyTeamsFilter) ([]models.MyTeam, models.Pagination, error)
	UpdateMemberStatus(ctx context.Context, teamID, userID int, status models.MemberStatus) error
}

type teamService struct {
	db               *sql.DB
	teamRepo         repositories.TeamRepository
	userRepo         repositories.UserRepository
	sportRepo        repositories.SportRepository
	notificationRepo repositories.NotificationRepository
	images           storage.ImageUploader
	publisher        NotificationPublisher
}

func NewTeamService(
	database *sql.DB,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	sportRepo repositories.SportRepository,
	notificationRepo repositories.NotificationRepository,
	images storage.ImageUploader,
	publisher NotificationPublisher,
) TeamService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &teamService{
		db:               database,
		teamRepo:         teamRepo,
		userRepo:         userRepo,
		sportRepo:        sportRepo,
		notificationRepo: notificationRepo,
		images:           images,
		publisher:        publisher,
	}
}

func (s *teamService) Create(ctx context.Context, input CreateTeamInput) (*models.TeamWithMembers, error) {
	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.TeamName == "" || input.SportID <= 0 || input.CreatedByUserID <= 0 ||
		input.TeamType == "" || input.TeamGender == "" {
		return nil, errMissingFields
	}

	team := &models.Team{
		Name:            input.TeamName,
		SportID:         input.SportID,
		TeamType:        input.TeamType,
		TeamGender:      input.TeamGender,
		CreatedByUserID: input.CreatedByUserID,
		ClubID:          input.ClubID,
		Club:            input.Club,
		Country:         input.Country,
		State:           input.State,
		Region:          input.Region,
		Description:     input.Description,
	}

	if input.AvatarBase64 != nil && *input.AvatarBase64 != "" {
		img, err := uploadBase64(ctx, s.images, *input.AvatarBase64, "team-avatar.jpg", "team_avatar")
		if err != nil {
			return nil, err
		}
		team.AvatarURL = &img.Variants.Avatar
	}
	if input.MainImageBase64 != nil && *input.MainImageBase64 != "" {
		img, err := uploadBase64(ctx, s.images, *input.MainImageBase64, "team-main.jpg", "team_main")
		if err != nil {
			return nil, err
		}
		team.MainImageURL = &img.Variants.Public
	}

	result := &models.TeamWithMembers{}
	var invites []models.Notification

	err := db.InTx(ctx, s.db, func(tx *sql.Tx) error {
		creator, err := s.userRepo.GetByID(ctx, tx, input.CreatedByUserID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return errUserNotFound
			}
			return err
		}
		if _, err := s.sportRepo.GetByID(ctx, tx, input.SportID); err != nil {
			if errors.Is(err, repositories.ErrSportNotFound) {
				return notFoundError("Sport not found")
			}
			return err
		}

		if err := s.teamRepo.Create(ctx, tx, team); err != nil {
			return err
		}

		owner, err := s.addMember(ctx, tx, team.ID, creator, models.MemberStatusApproved)
		if err != nil {
			return err
		}
		members := []models.TeamMember{*owner}

		seen := map[int]bool{creator.ID: true}
		for _, memberID := range input.MemberIDs {
			if memberID <= 0 || seen[memberID] {
				continue
			}
			seen[memberID] = true

			invitee, err := s.userRepo.GetByID(ctx, tx, memberID)
			if err != nil {
				if errors.Is(err, repositories.ErrUserNotFound) {
					return errUserNotFound
				}
				return err
			}
			member, err := s.addMember(ctx, tx, team.ID, invitee, models.MemberStatusPending)
			if err != nil {
				return err
			}
			members = append(members, *member)

			invite := teamInvite(creator, team, invitee.ID)
			if err := s.notificationRepo.Create(ctx, tx, &invite); err != nil {
				return err
			}
			invites = append(invites, invite)
		}

		result.Team = *team
		result.TeamMembers = members
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	for _, n := range invites {
		s.publisher.PublishNotification(n)
	}

	zerolog.Ctx(ctx).Info().Int("team_id", team.ID).Int("invites", len(invites)).Msg("team created")
	return result, nil
}

func (s *teamService) addMember(ctx context.Context, tx *sql.Tx, teamID int, user *models.User, status models.MemberStatus) (*models.TeamMember, error) {
	member := &models.TeamMember{
		TeamID:    &teamID,
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Status:    status,
	}
	if err := s.teamRepo.AddMember(ctx, tx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func teamInvite(creator *models.User, team *models.Team, userID int) models.Notification {
	refType := "team"
	link := utils.TeamLink(team.ID, team.Name)
	return models.Notification{
		UserID:        userID,
		Type:          models.NotificationTypeTeamInvite,
		Title:         "Team Invitation",
		Message:       fmt.Sprintf("You have been invited to join %s's %s team - %s", creator.Name, team.TeamType, team.Name),
		ReferenceID:   &team.ID,
		ReferenceType: &refType,
		Link:          &link,
		ImageURL:      team.AvatarURL,
	}
}

func (s *teamService) List(ctx context.Context, filter models.TeamFilter) ([]models.TeamListItem, error) {
	teams, err := s.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) GetDetails(ctx context.Context, id int) (*models.TeamDetails, error) {
	team, err := s.teamRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, errTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func (s *teamService) ListMine(ctx context.Context, filter models.MyTeamsFilter) ([]models.MyTeam, models.Pagination, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, constants.DefaultPageSize)
	if len(filter.MemberStatuses) == 0 {
		filter.MemberStatuses = []models.MemberStatus{
			models.MemberStatusApproved, models.MemberStatusPending, models.MemberStatusDeclined,
		}
	}
	for _, st := range filter.MemberStatuses {
		if !st.Valid() {
			return nil, models.Pagination{}, validationError("Invalid member_status. Must be one of: approved, pending, declined")
		}
	}

	teams, total, err := s.teamRepo.ListByMember(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list teams of user: %w", err)
	}
	return teams, models.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *teamService) UpdateMemberStatus(ctx context.Context, teamID, userID int, status models.MemberStatus) error {
	if status != models.MemberStatusApproved && status != models.MemberStatusDeclined {
		return validationError("Invalid status. Must be either 'approved' or 'declined'")
	}

	if err := s.teamRepo.UpdateMemberStatus(ctx, teamID, userID, status); err != nil {
		if errors.Is(err, repositories.ErrTeamMemberNotFound) {
			return notFoundError("Team member not found")
		}
		return fmt.Errorf("failed to update member status: %w", err)
	}
	return nil
}
