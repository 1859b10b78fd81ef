package importer

import (
	"context"
	"fmt"

	"github.com/Lil-Chen05/TheBench/internal/metrics"
	"github.com/Lil-Chen05/TheBench/internal/models"
)

// ReferenceCache maps natural keys to stored rows for the length of one run.
// It is loaded once and then only grows through the Resolver.
type ReferenceCache struct {
	teams       map[string]*models.Team
	teamsByName map[string]*models.Team
	players     map[models.PlayerKey]*models.Player
	seasons     map[string]*models.Season
	games       map[models.GameKey]*models.Game
}

// NewReferenceCache creates an empty cache
func NewReferenceCache() *ReferenceCache {
	return &ReferenceCache{
		teams:       make(map[string]*models.Team),
		teamsByName: make(map[string]*models.Team),
		players:     make(map[models.PlayerKey]*models.Player),
		seasons:     make(map[string]*models.Season),
		games:       make(map[models.GameKey]*models.Game),
	}
}

// Load bulk-fetches teams, players, seasons and games from the store
func (c *ReferenceCache) Load(ctx context.Context, store Store) error {
	teams, err := store.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}
	players, err := store.ListPlayers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load players: %w", err)
	}
	seasons, err := store.ListSeasons(ctx)
	if err != nil {
		return fmt.Errorf("failed to load seasons: %w", err)
	}
	games, err := store.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to load games: %w", err)
	}

	for _, team := range teams {
		c.teams[team.Abbr] = team
		// Opponent names are assumed unique; keep the first in load order
		if _, ok := c.teamsByName[team.TeamName]; !ok {
			c.teamsByName[team.TeamName] = team
		}
	}
	for _, player := range players {
		c.players[player.Key()] = player
	}
	for _, season := range seasons {
		c.seasons[season.Name] = season
	}
	for _, game := range games {
		c.games[game.Key()] = game
	}

	metrics.UpdateReferenceCounts(len(c.teams), len(c.players), len(c.seasons), len(c.games))

	return nil
}

// Team looks a team up by abbreviation
func (c *ReferenceCache) Team(abbr string) (*models.Team, bool) {
	team, ok := c.teams[abbr]
	return team, ok
}

// TeamByName looks a team up by display name
func (c *ReferenceCache) TeamByName(name string) (*models.Team, bool) {
	team, ok := c.teamsByName[name]
	return team, ok
}

// CacheCounts is the number of cached rows per entity
type CacheCounts struct {
	Teams   int
	Players int
	Seasons int
	Games   int
}

// Counts returns the current cache sizes
func (c *ReferenceCache) Counts() CacheCounts {
	return CacheCounts{
		Teams:   len(c.teams),
		Players: len(c.players),
		Seasons: len(c.seasons),
		Games:   len(c.games),
	}
}
