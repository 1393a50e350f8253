package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/storage"
	"github.com/rs/zerolog"
)

var (
	validPaymentTypes   = []string{"cash", "credit", "bank transfer", "other"}
	validManageTypes    = []string{"self", "torny", "hybrid"}
	teamTournamentTypes = []string{"pairs", "triples", "fours"}
)

type ImagePayload struct {
	Data     string `json:"data"`
	Filename string `json:"filename"`
}

type CreateTournamentInput struct {
	Title           string        `json:"title"`
	Description     *string       `json:"description"`
	Sport           string        `json:"sport"`
	Type            *string       `json:"type"`
	Gender          *string       `json:"gender"`
	Location        string        `json:"location"`
	Entries         *int          `json:"entries"`
	EntryFee        *float64      `json:"entry_fee"`
	TotalPrizeMoney *float64      `json:"total_prize_money"`
	FirstPrize      *float64      `json:"first_prize"`
	SecondPrize     *float64      `json:"second_prize"`
	ThirdPrize      *float64      `json:"third_prize"`
	PaymentType     *string       `json:"payment_type"`
	ManageType      *string       `json:"manage_type"`
	EntriesClose    *string       `json:"entries_close"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	CreatedByUserID int           `json:"created_by_user_id"`
	Country         *string       `json:"country"`
	State           *string       `json:"state"`
	Region          *string       `json:"region"`
	MaxEntries      *int          `json:"max_entries"`
	Image           *ImagePayload `json:"image"`
}

type OrganiserTournamentsQuery struct {
	OrganiserID int
	Gender      string
	Type        string
	Period      string
	Search      string
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	List(ctx context.Context, filter models.TournamentFilter) ([]models.Tournament, error)
	GetDetails(ctx context.Context, id int) (*models.TournamentDetails, error)
	ListByOrganiser(ctx context.Context, query OrganiserTournamentsQuery) ([]models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	images         storage.ImageUploader
	now            func() time.Time
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository, images storage.ImageUploader) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo, images: images, now: time.Now}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if strings.TrimSpace(input.Title) == "" || input.Sport == "" || input.Location == "" ||
		input.StartDate == "" || input.EndDate == "" || input.CreatedByUserID <= 0 {
		return nil, errMissingFields
	}

	paymentType, err := normalizeChoice(input.PaymentType, validPaymentTypes, "payment type")
	if err != nil {
		return nil, err
	}
	manageType, err := normalizeChoice(input.ManageType, validManageTypes, "manage type")
	if err != nil {
		return nil, err
	}

	start, err := parseDate(input.StartDate)
	if err != nil {
		return nil, validationError("Invalid start_date")
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return nil, validationError("Invalid end_date")
	}
	if end.Before(start) {
		return nil, validationError("end_date must not be before start_date")
	}

	t := &models.Tournament{
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		Sport:           input.Sport,
		Type:            input.Type,
		Gender:          input.Gender,
		Location:        input.Location,
		Entries:         input.Entries,
		EntryFee:        input.EntryFee,
		TotalPrizeMoney: input.TotalPrizeMoney,
		FirstPrize:      input.FirstPrize,
		SecondPrize:     input.SecondPrize,
		ThirdPrize:      input.ThirdPrize,
		PaymentType:     paymentType,
		ManageType:      manageType,
		StartDate:       start,
		EndDate:         end,
		CreatedByUserID: input.CreatedByUserID,
		Country:         input.Country,
		State:           input.State,
		Region:          input.Region,
		MaxEntries:      input.MaxEntries,
		EntryType:       entryTypeFor(derefString(input.Type)),
	}

	if input.EntriesClose != nil && *input.EntriesClose != "" {
		closes, err := parseDate(*input.EntriesClose)
		if err != nil {
			return nil, validationError("Invalid entries_close")
		}
		t.EntriesClose = &closes
	}

	if input.Image != nil && input.Image.Data != "" {
		filename := input.Image.Filename
		if filename == "" {
			filename = "tournament.jpg"
		}
		img, err := uploadBase64(ctx, s.images, input.Image.Data, filename, "tournament")
		if err != nil {
			return nil, err
		}
		t.HeroImage = &img.Variants.Public
		t.ThumbnailImage = &img.Variants.Thumbnail
		t.ImageID = &img.ID
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("tournament_id", t.ID).Str("entry_type", string(t.EntryType)).Msg("tournament created")
	return t, nil
}

// normalizeChoice lower-cases an optional enum value and checks it against the allowed set.
func normalizeChoice(value *string, allowed []string, label string) (*string, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	if !oneOf(*value, allowed...) {
		return nil, validationError(fmt.Sprintf("Invalid %s. Must be one of: %s", label, strings.Join(allowed, ", ")))
	}
	v := strings.ToLower(strings.TrimSpace(*value))
	return &v, nil
}

func entryTypeFor(tournamentType string) models.EntryType {
	if oneOf(tournamentType, teamTournamentTypes...) {
		return models.EntryTypeTeam
	}
	return models.EntryTypeIndividual
}

func (s *tournamentService) List(ctx context.Context, filter models.TournamentFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) GetDetails(ctx context.Context, id int) (*models.TournamentDetails, error) {
	t, err := s.tournamentRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, errTournamentAbsent
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return t, nil
}

func (s *tournamentService) ListByOrganiser(ctx context.Context, q OrganiserTournamentsQuery) ([]models.Tournament, error) {
	filter := models.OrganiserTournamentFilter{
		OrganiserID: q.OrganiserID,
		Gender:      q.Gender,
		Type:        q.Type,
		Search:      q.Search,
	}

	if q.Period != "" {
		since, until, ok := periodWindow(q.Period, s.now())
		if ok {
			filter.Since, filter.Until = &since, &until
		} else {
			zerolog.Ctx(ctx).Debug().Str("period", q.Period).Msg("ignoring unknown period")
		}
	}

	tournaments, err := s.tournamentRepo.ListByOrganiser(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list organiser tournaments: %w", err)
	}
	return tournaments, nil
}

// periodWindow returns the range of start dates from today to the end of the named period.
func periodWindow(period string, now time.Time) (time.Time, time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch strings.ToLower(period) {
	case "week":
		return today, today.AddDate(0, 0, 7), true
	case "month":
		return today, today.AddDate(0, 1, 0), true
	case "3months":
		return today, today.AddDate(0, 3, 0), true
	case "year":
		return today, today.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}
