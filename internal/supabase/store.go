package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/metrics"
	"github.com/Lil-Chen05/TheBench/internal/models"

	"github.com/rs/zerolog/log"
	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

// PageSize matches the default PostgREST max-rows setting on Supabase projects
const PageSize = 1000

const statsConflictTarget = "player_id,game_id"

// Store talks to the Supabase REST API for the same tables the Postgres
// repositories use. The REST client has no context support; ctx is accepted
// to satisfy the importer's store interface.
type Store struct {
	client *supa.Client
}

// New creates a store authenticated with a service role key
func New(url, serviceRoleKey string) (*Store, error) {
	client, err := supa.NewClient(url, serviceRoleKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	log.Info().Str("url", url).Msg("Supabase client initialized")

	return &Store{client: client}, nil
}

// listAll pages through table ordered by id until a short page is returned
func listAll[T any](s *Store, table, columns string) (out []T, err error) {
	start := time.Now()
	defer func() { observe("select", table, start, err) }()

	for from := 0; ; from += PageSize {
		var page []T
		_, err := s.client.From(table).
			Select(columns, "", false).
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			Range(from, from+PageSize-1, "").
			ExecuteTo(&page)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", table, err)
		}

		out = append(out, page...)
		if len(page) < PageSize {
			return out, nil
		}
	}
}

// insertOne inserts row and returns the stored representation
func insertOne[T any](s *Store, table string, row T) (created T, err error) {
	start := time.Now()
	defer func() { observe("insert", table, start, err) }()

	var rows []T
	_, err = s.client.From(table).
		Insert(row, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return created, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	if len(rows) == 0 {
		return created, fmt.Errorf("insert into %s returned no rows", table)
	}

	return rows[0], nil
}

func observe(operation, table string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordDBQuery(operation, table, status, time.Since(start).Seconds())
}

func (s *Store) ListTeams(ctx context.Context) ([]*models.Team, error) {
	rows, err := listAll[teamRow](s, "basketballteams", "id,abbr,team_name")
	if err != nil {
		return nil, err
	}

	teams := make([]*models.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, row.toTeam())
	}
	return teams, nil
}

func (s *Store) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	rows, err := listAll[playerRow](s, "players", "id,name,jersey_number,team_id,sport_id")
	if err != nil {
		return nil, err
	}

	players := make([]*models.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, row.toPlayer())
	}
	return players, nil
}

func (s *Store) ListSeasons(ctx context.Context) ([]*models.Season, error) {
	rows, err := listAll[seasonRow](s, "seasons", "id,sport_id,name,is_active")
	if err != nil {
		return nil, err
	}

	seasons := make([]*models.Season, 0, len(rows))
	for _, row := range rows {
		seasons = append(seasons, row.toSeason())
	}
	return seasons, nil
}

func (s *Store) ListGames(ctx context.Context) ([]*models.Game, error) {
	rows, err := listAll[gameRow](s, "games", "id,season_id,game_date,home_team_id,away_team_id,location,is_completed")
	if err != nil {
		return nil, err
	}

	games := make([]*models.Game, 0, len(rows))
	for _, row := range rows {
		game, err := row.toGame()
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

func (s *Store) CreateSeason(ctx context.Context, season *models.Season) error {
	created, err := insertOne(s, "seasons", newSeasonRow(season))
	if err != nil {
		return err
	}
	season.ID = created.ID
	return nil
}

func (s *Store) CreatePlayer(ctx context.Context, player *models.Player) error {
	created, err := insertOne(s, "players", newPlayerRow(player))
	if err != nil {
		return err
	}
	player.ID = created.ID
	return nil
}

func (s *Store) CreateGame(ctx context.Context, game *models.Game) error {
	created, err := insertOne(s, "games", newGameRow(game))
	if err != nil {
		return err
	}
	game.ID = created.ID
	return nil
}

// UpsertPlayerGameStats sends the batch as one upsert request on (player_id, game_id)
func (s *Store) UpsertPlayerGameStats(ctx context.Context, batch []*models.PlayerGameStats) (err error) {
	batch = models.DedupeStats(batch)
	if len(batch) == 0 {
		return nil
	}

	start := time.Now()
	defer func() { observe("upsert", "player_game_stats", start, err) }()

	rows := make([]statsRow, 0, len(batch))
	for _, stats := range batch {
		rows = append(rows, newStatsRow(stats))
	}

	_, _, err = s.client.From("player_game_stats").
		Upsert(rows, statsConflictTarget, "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert player game stats: %w", err)
	}

	return nil
}
