package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// StatsRepository handles player_game_stats database operations
type StatsRepository struct {
	db *Database
}

var statsColumns = []string{
	"player_id", "game_id", "team_id", "is_starter",
	"minutes_played", "points",
	"field_goals_made", "field_goals_attempted", "field_goal_percentage",
	"three_point_made", "three_point_attempted", "three_point_percentage",
	"free_throws_made", "free_throws_attempted", "free_throw_percentage",
	"true_shooting_percentage", "effective_field_goal_percentage",
	"offensive_rebounds", "defensive_rebounds", "total_rebounds",
	"assists", "turnovers", "steals", "blocks", "personal_fouls",
}

// maxBindParams is the Postgres wire protocol limit on parameters per statement
const maxBindParams = 65535

// maxStatsPerStatement is the most records one upsert statement can carry
var maxStatsPerStatement = maxBindParams / len(statsColumns)

// chunkStats splits batch into runs of at most size records
func chunkStats(batch []*models.PlayerGameStats, size int) [][]*models.PlayerGameStats {
	chunks := make([][]*models.PlayerGameStats, 0, (len(batch)+size-1)/size)
	for start := 0; start < len(batch); start += size {
		end := start + size
		if end > len(batch) {
			end = len(batch)
		}
		chunks = append(chunks, batch[start:end])
	}
	return chunks
}

func statsValues(s *models.PlayerGameStats) []interface{} {
	return []interface{}{
		s.PlayerID, s.GameID, s.TeamID, s.IsStarter,
		s.MinutesPlayed, s.Points,
		s.FieldGoalsMade, s.FieldGoalsAttempted, s.FieldGoalPercentage,
		s.ThreePointMade, s.ThreePointAttempted, s.ThreePointPercentage,
		s.FreeThrowsMade, s.FreeThrowsAttempted, s.FreeThrowPercentage,
		s.TrueShootingPercentage, s.EffectiveFieldGoalPercentage,
		s.OffensiveRebounds, s.DefensiveRebounds, s.TotalRebounds,
		s.Assists, s.Turnovers, s.Steals, s.Blocks, s.PersonalFouls,
	}
}

// upsertStatsQuery builds a multi-row upsert for n records
func upsertStatsQuery(n int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO player_game_stats (")
	b.WriteString(strings.Join(statsColumns, ", "))
	b.WriteString(") VALUES ")

	width := len(statsColumns)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := 0; j < width; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", i*width+j+1)
		}
		b.WriteByte(')')
	}

	b.WriteString(" ON CONFLICT (player_id, game_id) DO UPDATE SET ")
	updates := make([]string, 0, width-2)
	for _, col := range statsColumns[2:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	b.WriteString(strings.Join(updates, ", "))

	return b.String()
}

// UpsertBatch writes the batch keyed on (player_id, game_id). Batches too large
// for one statement are split and written in a single transaction, so either
// every record is written or none is.
func (r *StatsRepository) UpsertBatch(ctx context.Context, batch []*models.PlayerGameStats) (err error) {
	batch = models.DedupeStats(batch)
	if len(batch) == 0 {
		return nil
	}

	start := time.Now()
	defer func() { observe("upsert", "player_game_stats", start, err) }()

	chunks := chunkStats(batch, maxStatsPerStatement)

	var affected int64
	if len(chunks) == 1 {
		affected, err = upsertStats(ctx, r.db.Pool, batch)
	} else {
		err = pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
			for _, chunk := range chunks {
				n, err := upsertStats(ctx, tx, chunk)
				if err != nil {
					return err
				}
				affected += n
			}
			return nil
		})
	}
	if err != nil {
		return fmt.Errorf("failed to upsert player game stats: %w", err)
	}

	log.Debug().
		Int("records", len(batch)).
		Int("statements", len(chunks)).
		Int64("rows_affected", affected).
		Msg("Player game stats upserted")

	return nil
}

// execer is satisfied by both the pool and a transaction
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func upsertStats(ctx context.Context, db execer, batch []*models.PlayerGameStats) (int64, error) {
	args := make([]interface{}, 0, len(batch)*len(statsColumns))
	for _, s := range batch {
		args = append(args, statsValues(s)...)
	}

	tag, err := db.Exec(ctx, upsertStatsQuery(len(batch)), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GetByPlayerAndGame retrieves one stats line
func (r *StatsRepository) GetByPlayerAndGame(ctx context.Context, playerID, gameID int) (*models.PlayerGameStats, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM player_game_stats WHERE player_id = $1 AND game_id = $2",
		strings.Join(statsColumns, ", "),
	)

	var s models.PlayerGameStats
	err := r.db.Pool.QueryRow(ctx, query, playerID, gameID).Scan(
		&s.PlayerID, &s.GameID, &s.TeamID, &s.IsStarter,
		&s.MinutesPlayed, &s.Points,
		&s.FieldGoalsMade, &s.FieldGoalsAttempted, &s.FieldGoalPercentage,
		&s.ThreePointMade, &s.ThreePointAttempted, &s.ThreePointPercentage,
		&s.FreeThrowsMade, &s.FreeThrowsAttempted, &s.FreeThrowPercentage,
		&s.TrueShootingPercentage, &s.EffectiveFieldGoalPercentage,
		&s.OffensiveRebounds, &s.DefensiveRebounds, &s.TotalRebounds,
		&s.Assists, &s.Turnovers, &s.Steals, &s.Blocks, &s.PersonalFouls,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("stats not found: player_id=%d game_id=%d", playerID, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &s, nil
}

// CountByGame returns the number of stats lines recorded for a game
func (r *StatsRepository) CountByGame(ctx context.Context, gameID int) (int, error) {
	query := `SELECT COUNT(*) FROM player_game_stats WHERE game_id = $1`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, gameID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count stats: %w", err)
	}

	return count, nil
}
