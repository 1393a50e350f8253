package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, n *models.Notification) error
	ListByUser(ctx context.Context, userID, page, pageSize int) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, id int) error
}

type postgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(ctx context.Context, exec SQLExecutor, n *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, reference_id, reference_type, link, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_read, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		n.UserID, n.Type, n.Title, n.Message, n.ReferenceID, n.ReferenceType, n.Link, n.ImageURL,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *postgresNotificationRepository) ListByUser(ctx context.Context, userID, page, pageSize int) ([]models.Notification, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications of user %d: %w", userID, err)
	}

	query := `
		SELECT id, user_id, type, title, message, reference_id, reference_type, link, image_url, is_read, read_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications of user %d: %w", userID, err)
	}
	defer rows.Close()

	items := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.ReferenceID, &n.ReferenceType,
			&n.Link, &n.ImageURL, &n.IsRead, &n.ReadAt, &n.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification row: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return items, total, nil
}

func (r *postgresNotificationRepository) MarkRead(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE, read_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification %d as read: %w", id, err)
	}
	return checkAffectedRows(result, ErrNotificationNotFound)
}
