package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
)

type NotificationService interface {
	ListForUser(ctx context.Context, userID, page, pageSize int) (*models.NotificationPage, error)
	MarkRead(ctx context.Context, id int) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListForUser(ctx context.Context, userID, page, pageSize int) (*models.NotificationPage, error) {
	page, pageSize = normalizePage(page, pageSize, constants.DefaultPageSize)

	items, total, err := s.notificationRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	return &models.NotificationPage{
		Items: items,
		Meta: models.NotificationMeta{
			TotalItems:   total,
			ItemCount:    len(items),
			ItemsPerPage: pageSize,
			TotalPages:   totalPages,
			CurrentPage:  page,
		},
	}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id int) error {
	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return notFoundError("Notification not found")
		}
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}
