package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/db"
	"github.com/nevrodda11/torny-aws-api/metrics"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/utils"
	"github.com/rs/zerolog"
)

var validTeamTypes = []string{"singles", "pairs", "triples", "fours"}

type TemporaryMemberInput struct {
	UserID    *int    `json:"user_id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
	Gender    string  `json:"gender"`
	Position  *string `json:"position"`
	Club      *string `json:"club"`
	Sport     *string `json:"sport"`
}

type TemporaryTeamInput struct {
	TeamName   string                 `json:"team_name"`
	TeamType   string                 `json:"team_type"`
	TeamGender *string                `json:"team_gender"`
	Club       *string                `json:"club"`
	SportID    *int                   `json:"sport_id"`
	Members    []TemporaryMemberInput `json:"members"`
}

type CreateEntryInput struct {
	TournamentID    int                 `json:"tournament_id"`
	TeamID          *int                `json:"team_id"`
	EnteredByUserID *int                `json:"entered_by_user_id"`
	UserID          *int                `json:"user_id"`
	TemporaryTeam   *TemporaryTeamInput `json:"temporaryTeam"`
}

// EntryResult is what a successful entry hands back to the client.
type EntryResult struct {
	Category    models.EntryCategory `json:"-"`
	TempTeamID  *int                 `json:"temp_team_id,omitempty"`
	ReferenceID string               `json:"reference_id"`
}

type EntryService interface {
	Create(ctx context.Context, input CreateEntryInput) (*EntryResult, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.EntryDetails, error)
	IsEntered(ctx context.Context, tournamentID, userID int) (bool, error)
	UpdatePaymentStatus(ctx context.Context, tournamentID int, referenceID string, status models.PaymentStatus) error
}

type entryService struct {
	db             *sql.DB
	entryRepo      repositories.EntryRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	userRepo       repositories.UserRepository
	newReference   func() (string, error)
}

func NewEntryService(
	database *sql.DB,
	entryRepo repositories.EntryRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
) EntryService {
	return &entryService{
		db:             database,
		entryRepo:      entryRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		userRepo:       userRepo,
		newReference:   utils.GenerateReferenceID,
	}
}

// classifyEntry decides the entry category from the request alone.
// team_id wins, then an explicit user_id, then a temporary team, then entered_by_user_id.
func classifyEntry(input CreateEntryInput) (models.EntryCategory, error) {
	if input.TournamentID <= 0 ||
		(input.TeamID == nil && input.EnteredByUserID == nil && input.UserID == nil && input.TemporaryTeam == nil) {
		return "", errMissingFields
	}

	switch {
	case input.TeamID != nil:
		if *input.TeamID <= 0 {
			return "", validationError("Team ID must be a positive integer")
		}
		return models.EntryCategoryTeam, nil
	case input.UserID != nil:
		return models.EntryCategoryIndividual, validateUserID(*input.UserID)
	case input.TemporaryTeam != nil:
		return models.EntryCategoryTemporary, validateTemporaryTeam(input.TemporaryTeam)
	default:
		return models.EntryCategoryIndividual, validateUserID(*input.EnteredByUserID)
	}
}

func validateUserID(id int) error {
	if id <= 0 {
		return validationError("User ID must be a positive integer")
	}
	return nil
}

func validateTemporaryTeam(t *TemporaryTeamInput) error {
	if !oneOf(t.TeamType, validTeamTypes...) {
		return validationError("Invalid team_type. Must be one of: " + strings.Join(validTeamTypes, ", "))
	}
	if strings.TrimSpace(t.TeamName) == "" {
		return errMissingFields
	}
	for _, m := range t.Members {
		if m.UserID == nil && strings.TrimSpace(m.Email) == "" {
			return validationError("Each team member must have a user_id or email")
		}
	}
	return nil
}

func (s *entryService) Create(ctx context.Context, input CreateEntryInput) (*EntryResult, error) {
	category, err := classifyEntry(input)
	if err != nil {
		return nil, err
	}

	if _, err := s.tournamentRepo.GetByID(ctx, nil, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, errTournamentAbsent
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	var result *EntryResult
	switch category {
	case models.EntryCategoryTeam:
		result, err = s.enterTeam(ctx, input.TournamentID, *input.TeamID)
	case models.EntryCategoryTemporary:
		result, err = s.enterTemporaryTeam(ctx, input.TournamentID, input.EnteredByUserID, input.TemporaryTeam)
	default:
		userID := input.UserID
		if userID == nil {
			userID = input.EnteredByUserID
		}
		result, err = s.enterIndividual(ctx, input.TournamentID, *userID)
	}
	if err != nil {
		return nil, mapEntryError(err)
	}

	result.Category = category
	metrics.EntriesCreated.WithLabelValues(string(category)).Inc()
	zerolog.Ctx(ctx).Info().
		Int("tournament_id", input.TournamentID).
		Str("category", string(category)).
		Str("reference_id", result.ReferenceID).
		Msg("tournament entry created")
	return result, nil
}

func mapEntryError(err error) error {
	var svcErr *Error
	switch {
	case errors.As(err, &svcErr):
		return err
	case errors.Is(err, repositories.ErrTeamAlreadyEntered):
		return conflictError("Team is already entered in this tournament")
	case errors.Is(err, repositories.ErrUserAlreadyEntered):
		return conflictError("User is already entered in this tournament")
	case errors.Is(err, repositories.ErrTemporaryTeamExists):
		return conflictError("Team name already exists in this tournament")
	default:
		return fmt.Errorf("failed to enter tournament: %w", err)
	}
}

// withReference runs insert with fresh reference ids until one is not taken in the tournament.
func (s *entryService) withReference(insert func(ref string) error) (string, error) {
	var err error
	for attempt := 0; attempt < constants.ReferenceIDAttempts; attempt++ {
		var ref string
		ref, err = s.newReference()
		if err != nil {
			return "", err
		}
		if err = insert(ref); !errors.Is(err, repositories.ErrReferenceIDConflict) {
			return ref, err
		}
	}
	return "", err
}

func (s *entryService) enterTeam(ctx context.Context, tournamentID, teamID int) (*EntryResult, error) {
	if _, err := s.teamRepo.GetByID(ctx, nil, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, errTeamNotFound
		}
		return nil, err
	}

	ref, err := s.withReference(func(ref string) error {
		return s.entryRepo.Create(ctx, nil, &models.Entry{
			TournamentID:  tournamentID,
			TeamID:        &teamID,
			PaymentStatus: models.PaymentStatusPending,
			ReferenceID:   ref,
		})
	})
	if err != nil {
		return nil, err
	}
	return &EntryResult{ReferenceID: ref}, nil
}

func (s *entryService) enterIndividual(ctx context.Context, tournamentID, userID int) (*EntryResult, error) {
	ref, err := s.withReference(func(ref string) error {
		return s.entryRepo.Create(ctx, nil, &models.Entry{
			TournamentID:  tournamentID,
			UserID:        &userID,
			PaymentStatus: models.PaymentStatusPending,
			ReferenceID:   ref,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &EntryResult{ReferenceID: ref}, nil
}

// enterTemporaryTeam creates the one-off team, its members and the entry in one transaction.
// A reference id collision aborts the transaction, so the whole transaction is retried.
func (s *entryService) enterTemporaryTeam(ctx context.Context, tournamentID int, enteredBy *int, input *TemporaryTeamInput) (*EntryResult, error) {
	result := &EntryResult{}

	ref, err := s.withReference(func(ref string) error {
		return db.InTx(ctx, s.db, func(tx *sql.Tx) error {
			team := &models.TemporaryTeam{
				TournamentID:    tournamentID,
				Name:            strings.TrimSpace(input.TeamName),
				Club:            input.Club,
				CreatedByUserID: enteredBy,
				SportID:         input.SportID,
				TeamType:        strings.ToLower(strings.TrimSpace(input.TeamType)),
				TeamGender:      input.TeamGender,
			}
			if err := s.entryRepo.CreateTemporaryTeam(ctx, tx, team); err != nil {
				return err
			}

			for _, m := range input.Members {
				if err := s.addTemporaryMember(ctx, tx, team.ID, m); err != nil {
					return err
				}
			}

			if err := s.entryRepo.Create(ctx, tx, &models.Entry{
				TournamentID:  tournamentID,
				TempTeamID:    &team.ID,
				PaymentStatus: models.PaymentStatusUnpaid,
				ReferenceID:   ref,
			}); err != nil {
				return err
			}

			result.TempTeamID = &team.ID
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	result.ReferenceID = ref
	return result, nil
}

func (s *entryService) addTemporaryMember(ctx context.Context, tx *sql.Tx, tempTeamID int, m TemporaryMemberInput) error {
	userID, err := s.resolveMember(ctx, tx, m)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpsertPlayerData(ctx, tx, userID, m.Club, m.Sport, utils.NormalizeGender(m.Gender)); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return errUserNotFound
		}
		return err
	}

	member := &models.TeamMember{
		TempTeamID: &tempTeamID,
		UserID:     userID,
		Status:     models.MemberStatusApproved,
		Position:   m.Position,
		Club:       m.Club,
	}
	if err := s.teamRepo.AddMember(ctx, tx, member); err != nil {
		if errors.Is(err, repositories.ErrTeamMemberConflict) {
			return validationError("Each player can only be listed once in a team")
		}
		if errors.Is(err, repositories.ErrForeignKey) {
			return errUserNotFound
		}
		return err
	}
	return nil
}

// resolveMember returns the member's user id, reusing an account by email or creating a placeholder player.
func (s *entryService) resolveMember(ctx context.Context, tx *sql.Tx, m TemporaryMemberInput) (int, error) {
	if m.UserID != nil {
		return *m.UserID, nil
	}

	email := strings.TrimSpace(m.Email)
	existing, err := s.userRepo.GetByEmail(ctx, tx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return 0, err
	}

	password, err := utils.RandomPassword()
	if err != nil {
		return 0, fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	placeholder := &models.User{
		Name:         strings.TrimSpace(m.Name),
		Email:        email,
		Phone:        m.Phone,
		AvatarURL:    m.AvatarURL,
		PasswordHash: hash,
		UserType:     models.UserTypePlayer,
	}
	if err := s.userRepo.Create(ctx, tx, placeholder); err != nil {
		return 0, err
	}
	zerolog.Ctx(ctx).Debug().Int("user_id", placeholder.ID).Msg("created placeholder player")
	return placeholder.ID, nil
}

func (s *entryService) ListByTournament(ctx context.Context, tournamentID int) ([]models.EntryDetails, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, errTournamentAbsent
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	entries, err := s.entryRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

func (s *entryService) IsEntered(ctx context.Context, tournamentID, userID int) (bool, error) {
	if tournamentID <= 0 || userID <= 0 {
		return false, errMissingFields
	}
	entered, err := s.entryRepo.IsUserEntered(ctx, tournamentID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check entry: %w", err)
	}
	return entered, nil
}

func (s *entryService) UpdatePaymentStatus(ctx context.Context, tournamentID int, referenceID string, status models.PaymentStatus) error {
	referenceID = strings.TrimSpace(referenceID)
	if tournamentID <= 0 || referenceID == "" || status == "" {
		return errMissingFields
	}
	status = models.PaymentStatus(strings.ToLower(string(status)))
	if !status.Valid() {
		return validationError("Invalid payment status. Must be one of: paid, pending, unpaid, refund")
	}

	if err := s.entryRepo.UpdatePaymentStatus(ctx, tournamentID, referenceID, status); err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return notFoundError("Entry not found")
		}
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return nil
}
