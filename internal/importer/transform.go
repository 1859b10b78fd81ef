package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/models"
	"github.com/Lil-Chen05/TheBench/internal/statsfile"
)

// Row skip reasons
var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrOpponentNotFound = errors.New("opponent not found")
	ErrInvalidDate      = errors.New("invalid game date")
)

// Transformer resolves one source row into a stats record
type Transformer struct {
	cache    *ReferenceCache
	resolver *Resolver
}

// NewTransformer creates a transformer over a loaded cache
func NewTransformer(cache *ReferenceCache, resolver *Resolver) *Transformer {
	return &Transformer{cache: cache, resolver: resolver}
}

// Transform maps row to a stats record. Any error means the row is skipped;
// it never invalidates the run.
func (t *Transformer) Transform(ctx context.Context, row statsfile.Row) (*models.PlayerGameStats, error) {
	team, opponent, err := t.lookupTeams(row)
	if err != nil {
		return nil, err
	}

	homeTeamID, awayTeamID := opponent.ID, team.ID
	if row.IsHome() {
		homeTeamID, awayTeamID = team.ID, opponent.ID
	}

	seasonID, err := t.resolver.ResolveSeason(ctx, row.Get(statsfile.ColSeason))
	if err != nil {
		return nil, err
	}

	gameDate, err := parseGameDate(row)
	if err != nil {
		return nil, err
	}

	gameID, err := t.resolver.ResolveGame(ctx, gameDate, homeTeamID, awayTeamID, seasonID, row.Get(statsfile.ColLocation))
	if err != nil {
		return nil, err
	}

	jersey := statsfile.ParseInt(row.Get(statsfile.ColJersey))
	playerID, err := t.resolver.ResolvePlayer(ctx, row.Get(statsfile.ColPlayerName), jersey, team.ID)
	if err != nil {
		return nil, err
	}

	return row.StatsInput().ToPlayerGameStats(playerID, gameID, team.ID), nil
}

// Validate runs the lookup-only checks of Transform. It never writes, so a
// Transformer built without a resolver can use it.
func (t *Transformer) Validate(row statsfile.Row) error {
	if _, _, err := t.lookupTeams(row); err != nil {
		return err
	}
	_, err := parseGameDate(row)
	return err
}

func (t *Transformer) lookupTeams(row statsfile.Row) (team, opponent *models.Team, err error) {
	abbr := row.Get(statsfile.ColAbbr)
	team, ok := t.cache.Team(abbr)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrTeamNotFound, abbr)
	}

	opponentName := row.Get(statsfile.ColOpponent)
	opponent, ok = t.cache.TeamByName(opponentName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrOpponentNotFound, opponentName)
	}

	return team, opponent, nil
}

func parseGameDate(row statsfile.Row) (time.Time, error) {
	raw := row.Get(statsfile.ColDate)
	date, err := time.Parse(models.GameDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return date, nil
}

// SkipReason labels a row error for metrics and reports
func SkipReason(err error) string {
	var rowErr *statsfile.RowError
	switch {
	case errors.Is(err, ErrTeamNotFound):
		return "team_not_found"
	case errors.Is(err, ErrOpponentNotFound):
		return "opponent_not_found"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.As(err, &rowErr):
		return "malformed_record"
	default:
		return "store_error"
	}
}
