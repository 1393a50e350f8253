package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nevrodda11/torny-aws-api/db"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/storage"
	"github.com/nevrodda11/torny-aws-api/utils"
	"github.com/rs/zerolog"
)

type RegisterInput struct {
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Password    string  `json:"password"`
	AccountType string  `json:"account_type"`
	Phone       *string `json:"phone"`
	Country     *string `json:"country"`
	State       *string `json:"state"`
	Region      *string `json:"region"`

	Sport  *string `json:"sport"`
	Club   *string `json:"club"`
	ClubID *int    `json:"club_id"`
	Gender *string `json:"gender"`

	OrganiserType *string `json:"organiser_type"`
	BankName      *string `json:"bank_name"`
	AccountName   *string `json:"account_name"`
	BSB           *string `json:"bsb"`
	AccountNumber *string `json:"account_number"`
}

// UpdateUserInput carries a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	About        *string `json:"about"`
	Country      *string `json:"country"`
	State        *string `json:"state"`
	Region       *string `json:"region"`
	AvatarBase64 *string `json:"avatar_base64"`
	BannerBase64 *string `json:"banner_base64"`

	Sport  *string `json:"sport"`
	Club   *string `json:"club"`
	ClubID *int    `json:"club_id"`
	Gender *string `json:"gender"`

	OrganiserType *string `json:"organiser_type"`
	BankName      *string `json:"bank_name"`
	AccountName   *string `json:"account_name"`
	BSB           *string `json:"bsb"`
	AccountNumber *string `json:"account_number"`
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (int, error)
	GetDetails(ctx context.Context, id int) (*models.UserDetails, error)
	Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error)
	ListPlayers(ctx context.Context, filter models.PlayerFilter) ([]models.PlayerSummary, error)
}

type userService struct {
	db       *sql.DB
	userRepo repositories.UserRepository
	images   storage.ImageUploader
}

func NewUserService(database *sql.DB, userRepo repositories.UserRepository, images storage.ImageUploader) UserService {
	return &userService{db: database, userRepo: userRepo, images: images}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (int, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if input.Email == "" || input.Name == "" || input.Password == "" || input.AccountType == "" {
		return 0, errMissingFields
	}

	userType := models.UserType(strings.ToLower(input.AccountType))
	if !userType.Valid() {
		return 0, validationError("Invalid account_type. Must be one of: player, organiser")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		UserType:     userType,
		Country:      input.Country,
		State:        input.State,
		Region:       input.Region,
	}

	err = db.InTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		if userType == models.UserTypePlayer {
			return s.userRepo.CreatePlayerProfile(ctx, tx, user.ID, &models.PlayerProfile{
				Sport: input.Sport, Club: input.Club, ClubID: input.ClubID, Gender: input.Gender,
			})
		}
		return s.userRepo.CreateOrganiserProfile(ctx, tx, user.ID, &models.OrganiserProfile{
			Club:          input.Club,
			ClubID:        input.ClubID,
			OrganiserType: input.OrganiserType,
			BankName:      input.BankName,
			AccountName:   input.AccountName,
			BSB:           input.BSB,
			AccountNumber: input.AccountNumber,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return 0, conflictError("Email already registered")
		}
		return 0, fmt.Errorf("failed to register user: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("user_id", user.ID).Str("user_type", string(userType)).Msg("user registered")
	return user.ID, nil
}

func (s *userService) GetDetails(ctx context.Context, id int) (*models.UserDetails, error) {
	details, err := s.userRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("failed to get user details: %w", err)
	}
	return details, nil
}

func (s *userService) Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error) {
	current, err := s.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	upd := repositories.UserUpdate{
		Name:    input.Name,
		Phone:   input.Phone,
		About:   input.About,
		Country: input.Country,
		State:   input.State,
		Region:  input.Region,
	}

	if input.AvatarBase64 != nil && *input.AvatarBase64 != "" {
		img, err := uploadBase64(ctx, s.images, *input.AvatarBase64, fmt.Sprintf("avatar-%d.jpg", id), "avatar")
		if err != nil {
			return nil, err
		}
		upd.AvatarURL = &img.Variants.Avatar
	}
	if input.BannerBase64 != nil && *input.BannerBase64 != "" {
		img, err := uploadBase64(ctx, s.images, *input.BannerBase64, fmt.Sprintf("banner-%d.jpg", id), "banner")
		if err != nil {
			return nil, err
		}
		upd.BannerURL = &img.Variants.Thumbnail
	}

	err = db.InTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.userRepo.Update(ctx, tx, id, upd); err != nil {
			return err
		}
		if current.UserType == models.UserTypePlayer {
			return s.userRepo.UpdatePlayerProfile(ctx, tx, id, repositories.PlayerProfileUpdate{
				Sport: input.Sport, Club: input.Club, ClubID: input.ClubID, Gender: input.Gender,
			})
		}
		return s.userRepo.UpdateOrganiserProfile(ctx, tx, id, repositories.OrganiserProfileUpdate{
			Club:          input.Club,
			ClubID:        input.ClubID,
			OrganiserType: input.OrganiserType,
			BankName:      input.BankName,
			AccountName:   input.AccountName,
			BSB:           input.BSB,
			AccountNumber: input.AccountNumber,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return user, nil
}

func (s *userService) ListPlayers(ctx context.Context, filter models.PlayerFilter) ([]models.PlayerSummary, error) {
	players, err := s.userRepo.ListPlayers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}
