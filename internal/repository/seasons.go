package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// SeasonRepository handles season database operations
type SeasonRepository struct {
	db *Database
}

// Create inserts a new season and sets its ID
func (r *SeasonRepository) Create(ctx context.Context, season *models.Season) (err error) {
	start := time.Now()
	defer func() { observe("insert", "seasons", start, err) }()

	query := `
		INSERT INTO seasons (sport_id, name, is_active)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err = r.db.Pool.QueryRow(ctx, query, season.SportID, season.Name, season.IsActive).Scan(&season.ID)
	if err != nil {
		return fmt.Errorf("failed to create season: %w", err)
	}

	log.Debug().
		Int("id", season.ID).
		Str("name", season.Name).
		Bool("active", season.IsActive).
		Msg("Season created")

	return nil
}

// GetByName retrieves a basketball season by name
func (r *SeasonRepository) GetByName(ctx context.Context, name string) (*models.Season, error) {
	query := `
		SELECT id, sport_id, name, is_active
		FROM seasons
		WHERE name = $1 AND sport_id = $2
	`

	var season models.Season
	err := r.db.Pool.QueryRow(ctx, query, name, models.BasketballSportID).Scan(
		&season.ID, &season.SportID, &season.Name, &season.IsActive,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("season not found: name=%s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}

	return &season, nil
}

// List retrieves all seasons
func (r *SeasonRepository) List(ctx context.Context) (seasons []*models.Season, err error) {
	start := time.Now()
	defer func() { observe("select", "seasons", start, err) }()

	query := `
		SELECT id, sport_id, name, is_active
		FROM seasons
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var season models.Season
		if err := rows.Scan(&season.ID, &season.SportID, &season.Name, &season.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, &season)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seasons: %w", err)
	}

	return seasons, nil
}
