package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/models"

	"github.com/rs/zerolog/log"
)

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db *Database
}

// Create inserts a new player and sets its ID
func (r *PlayerRepository) Create(ctx context.Context, player *models.Player) (err error) {
	start := time.Now()
	defer func() { observe("insert", "players", start, err) }()

	query := `
		INSERT INTO players (name, jersey_number, team_id, sport_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err = r.db.Pool.QueryRow(
		ctx, query,
		player.Name, player.JerseyNumber, player.TeamID, player.SportID,
	).Scan(&player.ID)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	log.Debug().
		Int("id", player.ID).
		Str("name", player.Name).
		Int("team_id", player.TeamID).
		Msg("Player created")

	return nil
}

// List retrieves all players
func (r *PlayerRepository) List(ctx context.Context) (players []*models.Player, err error) {
	start := time.Now()
	defer func() { observe("select", "players", start, err) }()

	query := `
		SELECT id, name, jersey_number, team_id, sport_id
		FROM players
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var player models.Player
		err := rows.Scan(
			&player.ID, &player.Name, &player.JerseyNumber,
			&player.TeamID, &player.SportID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, &player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}
