package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
)

const defaultClubAdminRole = "admin"

type ClubService interface {
	List(ctx context.Context, filter models.ClubFilter) ([]models.Club, error)
	AddAdmin(ctx context.Context, clubID, userID int, role string) (*models.ClubAdmin, error)
}

type clubService struct {
	clubRepo repositories.ClubRepository
	userRepo repositories.UserRepository
}

func NewClubService(clubRepo repositories.ClubRepository, userRepo repositories.UserRepository) ClubService {
	return &clubService{clubRepo: clubRepo, userRepo: userRepo}
}

func (s *clubService) List(ctx context.Context, filter models.ClubFilter) ([]models.Club, error) {
	clubs, err := s.clubRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

func (s *clubService) AddAdmin(ctx context.Context, clubID, userID int, role string) (*models.ClubAdmin, error) {
	if clubID <= 0 || userID <= 0 {
		return nil, errMissingFields
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = defaultClubAdminRole
	}

	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, notFoundError("Club not found")
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	if _, err := s.userRepo.GetByID(ctx, nil, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	admin := &models.ClubAdmin{ClubID: clubID, UserID: userID, Role: role}
	if err := s.clubRepo.UpsertAdmin(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to add club admin: %w", err)
	}
	return admin, nil
}
