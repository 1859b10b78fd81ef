//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests for database operations
// Run with: go test -v -tags=integration ./internal/repository/...

const testSchema = `
	CREATE TABLE IF NOT EXISTS basketballteams (
		id SERIAL PRIMARY KEY,
		abbr TEXT NOT NULL UNIQUE,
		team_name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS seasons (
		id SERIAL PRIMARY KEY,
		sport_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT FALSE
	);
	CREATE TABLE IF NOT EXISTS players (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		jersey_number INTEGER,
		team_id INTEGER NOT NULL REFERENCES basketballteams(id),
		sport_id INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS games (
		id SERIAL PRIMARY KEY,
		season_id INTEGER NOT NULL REFERENCES seasons(id),
		game_date DATE NOT NULL,
		home_team_id INTEGER NOT NULL REFERENCES basketballteams(id),
		away_team_id INTEGER NOT NULL REFERENCES basketballteams(id),
		location TEXT,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE
	);
	CREATE TABLE IF NOT EXISTS player_game_stats (
		id SERIAL PRIMARY KEY,
		player_id INTEGER NOT NULL REFERENCES players(id),
		game_id INTEGER NOT NULL REFERENCES games(id),
		team_id INTEGER NOT NULL REFERENCES basketballteams(id),
		is_starter BOOLEAN NOT NULL DEFAULT FALSE,
		minutes_played INTEGER NOT NULL DEFAULT 0,
		points INTEGER NOT NULL DEFAULT 0,
		field_goals_made INTEGER NOT NULL DEFAULT 0,
		field_goals_attempted INTEGER NOT NULL DEFAULT 0,
		field_goal_percentage DOUBLE PRECISION,
		three_point_made INTEGER NOT NULL DEFAULT 0,
		three_point_attempted INTEGER NOT NULL DEFAULT 0,
		three_point_percentage DOUBLE PRECISION,
		free_throws_made INTEGER NOT NULL DEFAULT 0,
		free_throws_attempted INTEGER NOT NULL DEFAULT 0,
		free_throw_percentage DOUBLE PRECISION,
		true_shooting_percentage DOUBLE PRECISION,
		effective_field_goal_percentage DOUBLE PRECISION,
		offensive_rebounds INTEGER NOT NULL DEFAULT 0,
		defensive_rebounds INTEGER NOT NULL DEFAULT 0,
		total_rebounds INTEGER NOT NULL DEFAULT 0,
		assists INTEGER NOT NULL DEFAULT 0,
		turnovers INTEGER NOT NULL DEFAULT 0,
		steals INTEGER NOT NULL DEFAULT 0,
		blocks INTEGER NOT NULL DEFAULT 0,
		personal_fouls INTEGER NOT NULL DEFAULT 0,
		UNIQUE (player_id, game_id)
	);
`

func setupTestDB(t *testing.T) (*Database, context.Context) {
	ctx := context.Background()

	cfg := Config{
		URL:      os.Getenv("TEST_DATABASE_URL"),
		Host:     "localhost",
		Port:     "5432",
		Database: "thebench_test",
		User:     "thebench",
		Password: "thebench",
		SSLMode:  "disable",
	}

	db, err := NewDatabase(ctx, cfg)
	require.NoError(t, err, "Failed to connect to test database")

	_, err = db.Pool.Exec(ctx, testSchema)
	require.NoError(t, err, "Failed to create schema")

	_, err = db.Pool.Exec(ctx, `
		TRUNCATE player_game_stats, games, players, seasons, basketballteams RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err, "Failed to reset tables")

	return db, ctx
}

func teardownTestDB(t *testing.T, db *Database) {
	db.Close()
}

// seedTeams inserts teams directly; the importer never writes them
func seedTeams(t *testing.T, ctx context.Context, db *Database) {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO basketballteams (abbr, team_name) VALUES
			('BOS', 'Celtics'),
			('LAL', 'Lakers'),
			('NYK', 'Knicks')
	`)
	require.NoError(t, err, "Failed to seed teams")
}

func TestDatabaseConnection(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	// Test health check
	err := db.Health(ctx)
	assert.NoError(t, err, "Database health check should pass")

	// Test stats
	stats := db.PoolStats()
	assert.NotNil(t, stats, "Should return connection pool stats")
	assert.GreaterOrEqual(t, stats["max_conns"].(int32), int32(1), "Should have at least 1 max connection")
}

func TestDatabasePing(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := db.Pool.Ping(ctx)
	assert.NoError(t, err, "Should successfully ping database")
}
