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
)

type CreateCommentInput struct {
	UserID          int    `json:"user_id"`
	EntityType      string `json:"entity_type"`
	EntityID        int    `json:"entity_id"`
	CommentText     string `json:"comment_text"`
	ParentCommentID *int   `json:"parent_comment_id"`
}

type CommentService interface {
	Create(ctx context.Context, input CreateCommentInput) (*models.Comment, error)
	ListThreads(ctx context.Context, entityType string, entityID int) ([]models.CommentThread, error)
}

type commentService struct {
	db          *sql.DB
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
}

func NewCommentService(database *sql.DB, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) CommentService {
	return &commentService{db: database, commentRepo: commentRepo, userRepo: userRepo}
}

func (s *commentService) Create(ctx context.Context, input CreateCommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(input.CommentText)
	if input.UserID <= 0 || input.EntityType == "" || input.EntityID <= 0 || text == "" {
		return nil, errMissingFields
	}
	entityType := models.CommentEntity(strings.ToLower(input.EntityType))
	if !entityType.Valid() {
		return nil, validationError("Invalid entity_type")
	}

	comment := &models.Comment{
		UserID:          input.UserID,
		EntityType:      entityType,
		EntityID:        input.EntityID,
		ParentCommentID: input.ParentCommentID,
		CommentText:     text,
	}

	err := db.InTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.userRepo.GetByID(ctx, tx, input.UserID); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return errUserNotFound
			}
			return err
		}
		if input.ParentCommentID != nil {
			exists, err := s.commentRepo.Exists(ctx, tx, *input.ParentCommentID)
			if err != nil {
				return err
			}
			if !exists {
				return notFoundError("Parent comment not found")
			}
		}
		return s.commentRepo.Create(ctx, tx, comment)
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) ListThreads(ctx context.Context, entityType string, entityID int) ([]models.CommentThread, error) {
	if entityType == "" || entityID <= 0 {
		return nil, validationError("entity_type and entity_id are required")
	}
	et := models.CommentEntity(strings.ToLower(entityType))
	if !et.Valid() {
		return nil, validationError("Invalid entity_type")
	}

	threads, err := s.commentRepo.ListThreads(ctx, et, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return threads, nil
}
