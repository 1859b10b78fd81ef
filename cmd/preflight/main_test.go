package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Lil-Chen05/TheBench/internal/config"
	"github.com/Lil-Chen05/TheBench/internal/importer"
	"github.com/Lil-Chen05/TheBench/internal/models"
	"github.com/Lil-Chen05/TheBench/internal/statsfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// teamsOnly is a read-only store with two teams
type teamsOnly struct{}

func (teamsOnly) ListTeams(ctx context.Context) ([]*models.Team, error) {
	return []*models.Team{
		{ID: 1, Abbr: "BOS", TeamName: "Celtics"},
		{ID: 2, Abbr: "LAL", TeamName: "Lakers"},
	}, nil
}
func (teamsOnly) ListPlayers(ctx context.Context) ([]*models.Player, error) { return nil, nil }
func (teamsOnly) ListSeasons(ctx context.Context) ([]*models.Season, error) { return nil, nil }
func (teamsOnly) ListGames(ctx context.Context) ([]*models.Game, error) { return nil, nil }
func (teamsOnly) CreateSeason(ctx context.Context, s *models.Season) error { panic("write") }
func (teamsOnly) CreatePlayer(ctx context.Context, p *models.Player) error { panic("write") }
func (teamsOnly) CreateGame(ctx context.Context, g *models.Game) error { panic("write") }
func (teamsOnly) UpsertPlayerGameStats(ctx context.Context, b []*models.PlayerGameStats) error {
	panic("write")
}

func csvInput(lines ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(statsfile.RequiredColumns, ","))
	b.WriteString("\n")
	for _, values := range lines {
		row := make([]string, len(statsfile.RequiredColumns))
		copy(row, values)
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func TestCheck(t *testing.T) {
	cache := importer.NewReferenceCache()
	require.NoError(t, cache.Load(context.Background(), teamsOnly{}))

	// Abbr, Opponent, HomeAway, Season, Date
	input := csvInput(
		[]string{"BOS", "Lakers", "Home", "2024-25", "2024-11-05"},
		[]string{"XYZ", "Lakers", "Home", "2024-25", "2024-11-05"},
		[]string{"BOS", "Sonics", "Away", "2024-25", "2024-11-05"},
		[]string{"LAL", "Celtics", "Away", "2024-25", "Nov 5"},
		[]string{"LAL", "Celtics", "Home", "2024-25", "2024-11-06"},
	)

	reader, err := statsfile.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	r, err := check(reader, importer.NewTransformer(cache, nil))
	require.NoError(t, err)

	assert.Equal(t, 5, r.rows)
	assert.Equal(t, 2, r.ok)
	assert.Equal(t, map[string]int{
		"team_not_found":     1,
		"opponent_not_found": 1,
		"invalid_date":       1,
	}, r.skipped)
}

func writeInput(t *testing.T, lines ...[]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvInput(lines...)), 0o600))
	return path
}

func TestPreflight_ExitCodes(t *testing.T) {
	ctx := context.Background()

	clean := writeInput(t, []string{"BOS", "Lakers", "Home", "2024-25", "2024-11-05"})
	assert.Equal(t, exitOK, preflight(ctx, teamsOnly{}, clean))

	skipped := writeInput(t,
		[]string{"BOS", "Lakers", "Home", "2024-25", "2024-11-05"},
		[]string{"XYZ", "Lakers", "Home", "2024-25", "2024-11-05"},
	)
	assert.Equal(t, exitSkipped, preflight(ctx, teamsOnly{}, skipped))

	missing := filepath.Join(t.TempDir(), "missing.csv")
	assert.Equal(t, exitFailed, preflight(ctx, teamsOnly{}, missing))
}

func TestRun_UnknownBackend(t *testing.T) {
	code := run(context.Background(), &config.Config{StoreBackend: "sqlite"}, "stats.csv")
	assert.Equal(t, exitFailed, code, "Store errors return a code instead of exiting")
}
