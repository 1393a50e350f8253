package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/models"
)

var ErrSportNotFound = errors.New("sport not found")

type SportRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Sport, error)
	GetAll(ctx context.Context) ([]models.Sport, error)
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Sport, error) {
	query := `SELECT id, name FROM sports WHERE id = $1`

	var sport models.Sport
	err := executor(r.db, exec).QueryRowContext(ctx, query, id).Scan(&sport.ID, &sport.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to get sport %d: %w", id, err)
	}
	return &sport, nil
}

func (r *postgresSportRepository) GetAll(ctx context.Context) ([]models.Sport, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM sports ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	defer rows.Close()

	sports := make([]models.Sport, 0)
	for rows.Next() {
		var sport models.Sport
		if err := rows.Scan(&sport.ID, &sport.Name); err != nil {
			return nil, fmt.Errorf("failed to scan sport row: %w", err)
		}
		sports = append(sports, sport)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sport rows: %w", err)
	}
	return sports, nil
}
