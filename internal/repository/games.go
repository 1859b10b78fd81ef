package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

// Create inserts a new game and sets its ID
func (r *GameRepository) Create(ctx context.Context, game *models.Game) (err error) {
	start := time.Now()
	defer func() { observe("insert", "games", start, err) }()

	query := `
		INSERT INTO games (
			season_id, game_date, home_team_id, away_team_id, location, is_completed
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err = r.db.Pool.QueryRow(
		ctx, query,
		game.SeasonID, game.GameDate, game.HomeTeamID, game.AwayTeamID,
		game.Location, game.IsCompleted,
	).Scan(&game.ID)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	log.Debug().
		Int("id", game.ID).
		Str("date", game.GameDate.Format(models.GameDateLayout)).
		Int("home_team_id", game.HomeTeamID).
		Int("away_team_id", game.AwayTeamID).
		Msg("Game created")

	return nil
}

// GetByID retrieves a game by its database ID
func (r *GameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `
		SELECT id, season_id, game_date, home_team_id, away_team_id, location, is_completed
		FROM games
		WHERE id = $1
	`

	var game models.Game
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&game.ID, &game.SeasonID, &game.GameDate, &game.HomeTeamID,
		&game.AwayTeamID, &game.Location, &game.IsCompleted,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("game not found: id=%d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

// List retrieves all games
func (r *GameRepository) List(ctx context.Context) (games []*models.Game, err error) {
	start := time.Now()
	defer func() { observe("select", "games", start, err) }()

	query := `
		SELECT id, season_id, game_date, home_team_id, away_team_id, location, is_completed
		FROM games
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var game models.Game
		err := rows.Scan(
			&game.ID, &game.SeasonID, &game.GameDate, &game.HomeTeamID,
			&game.AwayTeamID, &game.Location, &game.IsCompleted,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, &game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}
