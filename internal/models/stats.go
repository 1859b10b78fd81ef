package models

import "database/sql"

// PlayerGameStats represents one player's box score line for one game.
// (PlayerID, GameID) is unique in player_game_stats.
type PlayerGameStats struct {
	PlayerID  int  `db:"player_id"`
	GameID    int  `db:"game_id"`
	TeamID    int  `db:"team_id"`
	IsStarter bool `db:"is_starter"`

	MinutesPlayed int32 `db:"minutes_played"`
	Points        int32 `db:"points"`

	// Shooting
	FieldGoalsMade               int32           `db:"field_goals_made"`
	FieldGoalsAttempted          int32           `db:"field_goals_attempted"`
	FieldGoalPercentage          sql.NullFloat64 `db:"field_goal_percentage"`
	ThreePointMade               int32           `db:"three_point_made"`
	ThreePointAttempted          int32           `db:"three_point_attempted"`
	ThreePointPercentage         sql.NullFloat64 `db:"three_point_percentage"`
	FreeThrowsMade               int32           `db:"free_throws_made"`
	FreeThrowsAttempted          int32           `db:"free_throws_attempted"`
	FreeThrowPercentage          sql.NullFloat64 `db:"free_throw_percentage"`
	TrueShootingPercentage       sql.NullFloat64 `db:"true_shooting_percentage"`
	EffectiveFieldGoalPercentage sql.NullFloat64 `db:"effective_field_goal_percentage"`

	// Rebounds
	OffensiveRebounds int32 `db:"offensive_rebounds"`
	DefensiveRebounds int32 `db:"defensive_rebounds"`
	TotalRebounds     int32 `db:"total_rebounds"`

	Assists       int32 `db:"assists"`
	Turnovers     int32 `db:"turnovers"`
	Steals        int32 `db:"steals"`
	Blocks        int32 `db:"blocks"`
	PersonalFouls int32 `db:"personal_fouls"`
}

// StatsKey is the upsert conflict key of player_game_stats
type StatsKey struct {
	PlayerID int
	GameID   int
}

// Key returns the conflict key of the stats line
func (s *PlayerGameStats) Key() StatsKey {
	return StatsKey{PlayerID: s.PlayerID, GameID: s.GameID}
}

// PlayerGameStatsInput holds the coerced numeric fields of one source row
// before identities are resolved. Unset counts become zero; unset rates stay NULL.
type PlayerGameStatsInput struct {
	IsStarter bool

	MinutesPlayed sql.NullInt32
	Points        sql.NullInt32

	FieldGoalsMade               sql.NullInt32
	FieldGoalsAttempted          sql.NullInt32
	FieldGoalPercentage          sql.NullFloat64
	ThreePointMade               sql.NullInt32
	ThreePointAttempted          sql.NullInt32
	ThreePointPercentage         sql.NullFloat64
	FreeThrowsMade               sql.NullInt32
	FreeThrowsAttempted          sql.NullInt32
	FreeThrowPercentage          sql.NullFloat64
	TrueShootingPercentage       sql.NullFloat64
	EffectiveFieldGoalPercentage sql.NullFloat64

	OffensiveRebounds sql.NullInt32
	DefensiveRebounds sql.NullInt32
	TotalRebounds     sql.NullInt32

	Assists       sql.NullInt32
	Turnovers     sql.NullInt32
	Steals        sql.NullInt32
	Blocks        sql.NullInt32
	PersonalFouls sql.NullInt32
}

// ToPlayerGameStats converts the input to a stats row for the resolved identities
func (in *PlayerGameStatsInput) ToPlayerGameStats(playerID, gameID, teamID int) *PlayerGameStats {
	return &PlayerGameStats{
		PlayerID:  playerID,
		GameID:    gameID,
		TeamID:    teamID,
		IsStarter: in.IsStarter,

		MinutesPlayed: countOrZero(in.MinutesPlayed),
		Points:        countOrZero(in.Points),

		FieldGoalsMade:               countOrZero(in.FieldGoalsMade),
		FieldGoalsAttempted:          countOrZero(in.FieldGoalsAttempted),
		FieldGoalPercentage:          in.FieldGoalPercentage,
		ThreePointMade:               countOrZero(in.ThreePointMade),
		ThreePointAttempted:          countOrZero(in.ThreePointAttempted),
		ThreePointPercentage:         in.ThreePointPercentage,
		FreeThrowsMade:               countOrZero(in.FreeThrowsMade),
		FreeThrowsAttempted:          countOrZero(in.FreeThrowsAttempted),
		FreeThrowPercentage:          in.FreeThrowPercentage,
		TrueShootingPercentage:       in.TrueShootingPercentage,
		EffectiveFieldGoalPercentage: in.EffectiveFieldGoalPercentage,

		OffensiveRebounds: countOrZero(in.OffensiveRebounds),
		DefensiveRebounds: countOrZero(in.DefensiveRebounds),
		TotalRebounds:     countOrZero(in.TotalRebounds),

		Assists:       countOrZero(in.Assists),
		Turnovers:     countOrZero(in.Turnovers),
		Steals:        countOrZero(in.Steals),
		Blocks:        countOrZero(in.Blocks),
		PersonalFouls: countOrZero(in.PersonalFouls),
	}
}

func countOrZero(v sql.NullInt32) int32 {
	if !v.Valid {
		return 0
	}
	return v.Int32
}

// DedupeStats collapses records sharing a conflict key, keeping the last one
// and the position of the first. A single upsert statement cannot touch one row twice.
func DedupeStats(batch []*PlayerGameStats) []*PlayerGameStats {
	index := make(map[StatsKey]int, len(batch))
	out := make([]*PlayerGameStats, 0, len(batch))
	for _, s := range batch {
		if i, ok := index[s.Key()]; ok {
			out[i] = s
			continue
		}
		index[s.Key()] = len(out)
		out = append(out, s)
	}
	return out
}
