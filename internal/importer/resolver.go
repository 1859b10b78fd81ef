package importer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/metrics"
	"github.com/Lil-Chen05/TheBench/internal/models"

	"github.com/rs/zerolog"
)

// CreatedCounts tallies entities inserted during a run
type CreatedCounts struct {
	Seasons int
	Players int
	Games   int
}

// Resolver returns the ID for a natural key, creating the row on a cache miss
type Resolver struct {
	cache   *ReferenceCache
	store   Store
	created CreatedCounts
}

// NewResolver creates a resolver writing through to store
func NewResolver(cache *ReferenceCache, store Store) *Resolver {
	return &Resolver{cache: cache, store: store}
}

// createOrGet returns index[key] or creates, caches and returns a new value.
// Nothing is cached when create fails.
func createOrGet[K comparable, V any](
	ctx context.Context,
	entity string,
	index map[K]V,
	key K,
	create func(ctx context.Context) (V, error),
) (V, bool, error) {
	if v, ok := index[key]; ok {
		metrics.RecordCacheHit(entity)
		return v, false, nil
	}
	metrics.RecordCacheMiss(entity)

	v, err := create(ctx)
	if err != nil {
		var zero V
		return zero, false, fmt.Errorf("failed to create %s: %w", entity, err)
	}

	index[key] = v
	metrics.RecordEntityCreated(entity)

	return v, true, nil
}

// ResolveSeason returns the season ID for name
func (r *Resolver) ResolveSeason(ctx context.Context, name string) (int, error) {
	season, created, err := createOrGet(ctx, "season", r.cache.seasons, name,
		func(ctx context.Context) (*models.Season, error) {
			season := models.NewSeason(name)
			if err := r.store.CreateSeason(ctx, season); err != nil {
				return nil, err
			}
			return season, nil
		})
	if err != nil {
		return 0, err
	}

	if created {
		r.created.Seasons++
		zerolog.Ctx(ctx).Info().
			Int("id", season.ID).
			Bool("active", season.IsActive).
			Msgf("Created season: %s", season.Name)
	}

	return season.ID, nil
}

// ResolvePlayer returns the player ID for (name, teamID)
func (r *Resolver) ResolvePlayer(ctx context.Context, name string, jersey sql.NullInt32, teamID int) (int, error) {
	key := models.PlayerKey{Name: name, TeamID: teamID}
	player, created, err := createOrGet(ctx, "player", r.cache.players, key,
		func(ctx context.Context) (*models.Player, error) {
			player := models.NewPlayer(name, jersey, teamID)
			if err := r.store.CreatePlayer(ctx, player); err != nil {
				return nil, err
			}
			return player, nil
		})
	if err != nil {
		return 0, err
	}

	if created {
		r.created.Players++
		zerolog.Ctx(ctx).Debug().
			Int("id", player.ID).
			Str("name", player.Name).
			Int("team_id", player.TeamID).
			Msg("Player created")
	}

	return player.ID, nil
}

// ResolveGame returns the game ID for (date, home, away)
func (r *Resolver) ResolveGame(ctx context.Context, date time.Time, homeTeamID, awayTeamID, seasonID int, location string) (int, error) {
	key := models.NewGameKey(date, homeTeamID, awayTeamID)
	game, created, err := createOrGet(ctx, "game", r.cache.games, key,
		func(ctx context.Context) (*models.Game, error) {
			game := models.NewCompletedGame(seasonID, date, homeTeamID, awayTeamID, location)
			if err := r.store.CreateGame(ctx, game); err != nil {
				return nil, err
			}
			return game, nil
		})
	if err != nil {
		return 0, err
	}

	if created {
		r.created.Games++
		zerolog.Ctx(ctx).Debug().
			Int("id", game.ID).
			Str("date", key.Date).
			Int("home_team_id", homeTeamID).
			Int("away_team_id", awayTeamID).
			Msg("Game created")
	}

	return game.ID, nil
}

// Created returns how many entities this resolver inserted
func (r *Resolver) Created() CreatedCounts {
	return r.created
}
