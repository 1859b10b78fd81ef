package supabase

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/models"
)

// JSON shapes of the REST rows. Nullable columns are pointers so NULL round-trips.

type teamRow struct {
	ID       int    `json:"id"`
	Abbr     string `json:"abbr"`
	TeamName string `json:"team_name"`
}

func (r teamRow) toTeam() *models.Team {
	return &models.Team{ID: r.ID, Abbr: r.Abbr, TeamName: r.TeamName}
}

type seasonRow struct {
	ID       int    `json:"id,omitempty"`
	SportID  int    `json:"sport_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func newSeasonRow(s *models.Season) seasonRow {
	return seasonRow{SportID: s.SportID, Name: s.Name, IsActive: s.IsActive}
}

func (r seasonRow) toSeason() *models.Season {
	return &models.Season{ID: r.ID, SportID: r.SportID, Name: r.Name, IsActive: r.IsActive}
}

type playerRow struct {
	ID           int    `json:"id,omitempty"`
	Name         string `json:"name"`
	JerseyNumber *int32 `json:"jersey_number"`
	TeamID       int    `json:"team_id"`
	SportID      int    `json:"sport_id"`
}

func newPlayerRow(p *models.Player) playerRow {
	row := playerRow{Name: p.Name, TeamID: p.TeamID, SportID: p.SportID}
	if p.JerseyNumber.Valid {
		jersey := p.JerseyNumber.Int32
		row.JerseyNumber = &jersey
	}
	return row
}

func (r playerRow) toPlayer() *models.Player {
	player := &models.Player{ID: r.ID, Name: r.Name, TeamID: r.TeamID, SportID: r.SportID}
	if r.JerseyNumber != nil {
		player.JerseyNumber = sql.NullInt32{Int32: *r.JerseyNumber, Valid: true}
	}
	return player
}

type gameRow struct {
	ID          int     `json:"id,omitempty"`
	SeasonID    int     `json:"season_id"`
	GameDate    string  `json:"game_date"`
	HomeTeamID  int     `json:"home_team_id"`
	AwayTeamID  int     `json:"away_team_id"`
	Location    *string `json:"location"`
	IsCompleted bool    `json:"is_completed"`
}

func newGameRow(g *models.Game) gameRow {
	row := gameRow{
		SeasonID:    g.SeasonID,
		GameDate:    g.GameDate.Format(models.GameDateLayout),
		HomeTeamID:  g.HomeTeamID,
		AwayTeamID:  g.AwayTeamID,
		IsCompleted: g.IsCompleted,
	}
	if g.Location.Valid {
		location := g.Location.String
		row.Location = &location
	}
	return row
}

func (r gameRow) toGame() (*models.Game, error) {
	// date columns come back as YYYY-MM-DD; timestamp columns carry a time part
	raw := r.GameDate
	if len(raw) > len(models.GameDateLayout) {
		raw = raw[:len(models.GameDateLayout)]
	}
	date, err := time.Parse(models.GameDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid game_date %q for game %d: %w", r.GameDate, r.ID, err)
	}

	game := &models.Game{
		ID:          r.ID,
		SeasonID:    r.SeasonID,
		GameDate:    date,
		HomeTeamID:  r.HomeTeamID,
		AwayTeamID:  r.AwayTeamID,
		IsCompleted: r.IsCompleted,
	}
	if r.Location != nil {
		game.Location = sql.NullString{String: *r.Location, Valid: true}
	}
	return game, nil
}

type statsRow struct {
	PlayerID  int  `json:"player_id"`
	GameID    int  `json:"game_id"`
	TeamID    int  `json:"team_id"`
	IsStarter bool `json:"is_starter"`

	MinutesPlayed int32 `json:"minutes_played"`
	Points        int32 `json:"points"`

	FieldGoalsMade               int32    `json:"field_goals_made"`
	FieldGoalsAttempted          int32    `json:"field_goals_attempted"`
	FieldGoalPercentage          *float64 `json:"field_goal_percentage"`
	ThreePointMade               int32    `json:"three_point_made"`
	ThreePointAttempted          int32    `json:"three_point_attempted"`
	ThreePointPercentage         *float64 `json:"three_point_percentage"`
	FreeThrowsMade               int32    `json:"free_throws_made"`
	FreeThrowsAttempted          int32    `json:"free_throws_attempted"`
	FreeThrowPercentage          *float64 `json:"free_throw_percentage"`
	TrueShootingPercentage       *float64 `json:"true_shooting_percentage"`
	EffectiveFieldGoalPercentage *float64 `json:"effective_field_goal_percentage"`

	OffensiveRebounds int32 `json:"offensive_rebounds"`
	DefensiveRebounds int32 `json:"defensive_rebounds"`
	TotalRebounds     int32 `json:"total_rebounds"`

	Assists       int32 `json:"assists"`
	Turnovers     int32 `json:"turnovers"`
	Steals        int32 `json:"steals"`
	Blocks        int32 `json:"blocks"`
	PersonalFouls int32 `json:"personal_fouls"`
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func newStatsRow(s *models.PlayerGameStats) statsRow {
	return statsRow{
		PlayerID:  s.PlayerID,
		GameID:    s.GameID,
		TeamID:    s.TeamID,
		IsStarter: s.IsStarter,

		MinutesPlayed: s.MinutesPlayed,
		Points:        s.Points,

		FieldGoalsMade:               s.FieldGoalsMade,
		FieldGoalsAttempted:          s.FieldGoalsAttempted,
		FieldGoalPercentage:          nullableFloat(s.FieldGoalPercentage),
		ThreePointMade:               s.ThreePointMade,
		ThreePointAttempted:          s.ThreePointAttempted,
		ThreePointPercentage:         nullableFloat(s.ThreePointPercentage),
		FreeThrowsMade:               s.FreeThrowsMade,
		FreeThrowsAttempted:          s.FreeThrowsAttempted,
		FreeThrowPercentage:          nullableFloat(s.FreeThrowPercentage),
		TrueShootingPercentage:       nullableFloat(s.TrueShootingPercentage),
		EffectiveFieldGoalPercentage: nullableFloat(s.EffectiveFieldGoalPercentage),

		OffensiveRebounds: s.OffensiveRebounds,
		DefensiveRebounds: s.DefensiveRebounds,
		TotalRebounds:     s.TotalRebounds,

		Assists:       s.Assists,
		Turnovers:     s.Turnovers,
		Steals:        s.Steals,
		Blocks:        s.Blocks,
		PersonalFouls: s.PersonalFouls,
	}
}
