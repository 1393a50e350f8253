package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/models"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, c *models.Comment) error
	Exists(ctx context.Context, exec SQLExecutor, id int) (bool, error)
	ListThreads(ctx context.Context, entityType models.CommentEntity, entityID int) ([]models.CommentThread, error)
}

type postgresCommentRepository struct {
	db *sql.DB
}

func NewPostgresCommentRepository(db *sql.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

func (r *postgresCommentRepository) Create(ctx context.Context, exec SQLExecutor, c *models.Comment) error {
	query := `
		INSERT INTO comments (user_id, entity_type, entity_id, parent_comment_id, comment_text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING comment_id, created_at, updated_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		c.UserID, c.EntityType, c.EntityID, c.ParentCommentID, c.CommentText,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *postgresCommentRepository) Exists(ctx context.Context, exec SQLExecutor, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM comments WHERE comment_id = $1)`
	if err := executor(r.db, exec).QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to look up comment %d: %w", id, err)
	}
	return exists, nil
}

// ListThreads returns top-level comments newest first, each with its replies oldest first.
func (r *postgresCommentRepository) ListThreads(ctx context.Context, entityType models.CommentEntity, entityID int) ([]models.CommentThread, error) {
	query := `
		SELECT c.comment_id, c.user_id, c.entity_type, c.entity_id, c.parent_comment_id, c.comment_text,
		       c.created_at, c.updated_at,
		       u.id, u.name, u.avatar_url,
		       COALESCE(rp.reply_count, 0), rp.replies
		FROM comments c
		JOIN users u ON u.id = c.user_id
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS reply_count,
			       json_agg(json_build_object(
			           'comment_id', r.comment_id,
			           'user_id', r.user_id,
			           'entity_type', r.entity_type,
			           'entity_id', r.entity_id,
			           'parent_comment_id', r.parent_comment_id,
			           'comment_text', r.comment_text,
			           'created_at', r.created_at,
			           'updated_at', r.updated_at,
			           'user_details', json_build_object('id', ru.id, 'name', ru.name, 'avatar_url', ru.avatar_url)
			       ) ORDER BY r.created_at ASC, r.comment_id ASC) AS replies
			FROM comments r
			JOIN users ru ON ru.id = r.user_id
			WHERE r.parent_comment_id = c.comment_id
		) rp ON TRUE
		WHERE c.entity_type = $1 AND c.entity_id = $2 AND c.parent_comment_id IS NULL
		ORDER BY c.created_at DESC, c.comment_id DESC`

	rows, err := r.db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	threads := make([]models.CommentThread, 0)
	for rows.Next() {
		var t models.CommentThread
		var replies jsonList[models.CommentReply]
		err := rows.Scan(&t.ID, &t.UserID, &t.EntityType, &t.EntityID, &t.ParentCommentID, &t.CommentText,
			&t.CreatedAt, &t.UpdatedAt,
			&t.UserDetails.ID, &t.UserDetails.Name, &t.UserDetails.AvatarURL,
			&t.ReplyCount, &replies)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		t.Replies = replies
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return threads, nil
}
