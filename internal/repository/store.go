package repository

import (
	"context"

	"github.com/Lil-Chen05/TheBench/internal/models"
)

// Store exposes the repositories through the importer's store interface
type Store struct {
	db *Database
}

// Store returns the importer-facing view of the database
func (db *Database) Store() *Store {
	return &Store{db: db}
}

func (s *Store) ListTeams(ctx context.Context) ([]*models.Team, error) {
	return s.db.Teams.List(ctx)
}

func (s *Store) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	return s.db.Players.List(ctx)
}

func (s *Store) ListSeasons(ctx context.Context) ([]*models.Season, error) {
	return s.db.Seasons.List(ctx)
}

func (s *Store) ListGames(ctx context.Context) ([]*models.Game, error) {
	return s.db.Games.List(ctx)
}

func (s *Store) CreateSeason(ctx context.Context, season *models.Season) error {
	return s.db.Seasons.Create(ctx, season)
}

func (s *Store) CreatePlayer(ctx context.Context, player *models.Player) error {
	return s.db.Players.Create(ctx, player)
}

func (s *Store) CreateGame(ctx context.Context, game *models.Game) error {
	return s.db.Games.Create(ctx, game)
}

func (s *Store) UpsertPlayerGameStats(ctx context.Context, batch []*models.PlayerGameStats) error {
	return s.db.Stats.UpsertBatch(ctx, batch)
}
