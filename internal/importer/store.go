package importer

import (
	"context"

	"github.com/Lil-Chen05/TheBench/internal/models"
)

// Store is the backing store the importer reads reference data from and writes to.
// Create methods set the generated ID on the passed row.
type Store interface {
	ListTeams(ctx context.Context) ([]*models.Team, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	ListSeasons(ctx context.Context) ([]*models.Season, error)
	ListGames(ctx context.Context) ([]*models.Game, error)

	CreateSeason(ctx context.Context, season *models.Season) error
	CreatePlayer(ctx context.Context, player *models.Player) error
	CreateGame(ctx context.Context, game *models.Game) error

	// UpsertPlayerGameStats writes the batch in one call, overwriting rows
	// that share (player_id, game_id)
	UpsertPlayerGameStats(ctx context.Context, batch []*models.PlayerGameStats) error
}
