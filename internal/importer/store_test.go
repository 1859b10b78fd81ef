package importer

import (
	"context"
	"errors"
	"io"

	"github.com/Lil-Chen05/TheBench/internal/models"
	"github.com/Lil-Chen05/TheBench/internal/statsfile"
)

// memoryStore is an in-memory Store that records every write
type memoryStore struct {
	teams   []*models.Team
	players []*models.Player
	seasons []*models.Season
	games   []*models.Game
	stats   map[models.StatsKey]*models.PlayerGameStats

	nextID int

	seasonCreates int
	playerCreates int
	gameCreates   int
	upsertSizes   []int
	upsertBatches [][]*models.PlayerGameStats

	listErr      error
	createErr    error
	upsertErrAt  map[int]error
	upsertCalled int
}

func newMemoryStore(teams ...*models.Team) *memoryStore {
	return &memoryStore{
		teams:  teams,
		stats:  make(map[models.StatsKey]*models.PlayerGameStats),
		nextID: 1000,
	}
}

func (s *memoryStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *memoryStore) ListTeams(ctx context.Context) ([]*models.Team, error) {
	return s.teams, s.listErr
}

func (s *memoryStore) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	out := make([]*models.Player, 0, len(s.players))
	for _, p := range s.players {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memoryStore) ListSeasons(ctx context.Context) ([]*models.Season, error) {
	out := make([]*models.Season, 0, len(s.seasons))
	for _, season := range s.seasons {
		cp := *season
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memoryStore) ListGames(ctx context.Context) ([]*models.Game, error) {
	out := make([]*models.Game, 0, len(s.games))
	for _, g := range s.games {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memoryStore) CreateSeason(ctx context.Context, season *models.Season) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.seasonCreates++
	season.ID = s.id()
	cp := *season
	s.seasons = append(s.seasons, &cp)
	return nil
}

func (s *memoryStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.playerCreates++
	player.ID = s.id()
	cp := *player
	s.players = append(s.players, &cp)
	return nil
}

func (s *memoryStore) CreateGame(ctx context.Context, game *models.Game) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.gameCreates++
	game.ID = s.id()
	cp := *game
	s.games = append(s.games, &cp)
	return nil
}

func (s *memoryStore) UpsertPlayerGameStats(ctx context.Context, batch []*models.PlayerGameStats) error {
	call := s.upsertCalled
	s.upsertCalled++
	s.upsertSizes = append(s.upsertSizes, len(batch))
	s.upsertBatches = append(s.upsertBatches, batch)

	if err, ok := s.upsertErrAt[call]; ok {
		return err
	}
	for _, stats := range batch {
		cp := *stats
		s.stats[stats.Key()] = &cp
	}
	return nil
}

// rowSource replays rows and errors in order
type rowSource struct {
	items []sourceItem
	pos   int
}

type sourceItem struct {
	row statsfile.Row
	err error
}

func newRowSource(rows ...statsfile.Row) *rowSource {
	src := &rowSource{}
	for _, row := range rows {
		src.items = append(src.items, sourceItem{row: row})
	}
	return src
}

func (s *rowSource) withError(err error) *rowSource {
	s.items = append(s.items, sourceItem{err: err})
	return s
}

func (s *rowSource) Next() (statsfile.Row, error) {
	if s.pos >= len(s.items) {
		return statsfile.Row{}, io.EOF
	}
	item := s.items[s.pos]
	s.pos++
	return item.row, item.err
}

var errStoreDown = errors.New("store unavailable")

func testTeams() []*models.Team {
	return []*models.Team{
		{ID: 1, Abbr: "BOS", TeamName: "Celtics"},
		{ID: 2, Abbr: "LAL", TeamName: "Lakers"},
		{ID: 3, Abbr: "NYK", TeamName: "Knicks"},
	}
}

func statsRow(overrides map[string]string) statsfile.Row {
	values := map[string]string{
		statsfile.ColAbbr:        "BOS",
		statsfile.ColOpponent:    "Lakers",
		statsfile.ColHomeAway:    "Home",
		statsfile.ColSeason:      "2024-25",
		statsfile.ColDate:        "2024-11-05",
		statsfile.ColLocation:    "TD Garden",
		statsfile.ColPlayerName:  "Jayson Tatum",
		statsfile.ColJersey:      "0",
		statsfile.ColStarterFlag: "True",
		statsfile.ColMins:        "36.0",
		statsfile.ColPts:         "27",
		statsfile.ColFGM:         "10",
		statsfile.ColFGA:         "22",
		statsfile.ColFGPct:       "0.455",
		statsfile.Col3PTM:        "3",
		statsfile.Col3PTA:        "9",
		statsfile.Col3PTPct:      "0.333",
		statsfile.ColFTM:         "4",
		statsfile.ColFTA:         "4",
		statsfile.ColFTPct:       "1.0",
		statsfile.ColTSPct:       "",
		statsfile.ColEFGPct:      "0.523",
		statsfile.ColRebO:        "1",
		statsfile.ColRebD:        "7",
		statsfile.ColRebT:        "8",
		statsfile.ColAST:         "5",
		statsfile.ColTO:          "2",
		statsfile.ColSTL:         "1",
		statsfile.ColBLK:         "",
		statsfile.ColPF:          "2",
	}
	for k, v := range overrides {
		values[k] = v
	}
	return statsfile.NewRow(values)
}
