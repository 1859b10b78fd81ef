package models

import (
	"database/sql"
	"time"
)

// GameDateLayout is the only accepted game date format
const GameDateLayout = "2006-01-02"

// Game represents a completed game row
type Game struct {
	ID          int            `db:"id"`
	SeasonID    int            `db:"season_id"`
	GameDate    time.Time      `db:"game_date"`
	HomeTeamID  int            `db:"home_team_id"`
	AwayTeamID  int            `db:"away_team_id"`
	Location    sql.NullString `db:"location"`
	IsCompleted bool           `db:"is_completed"`
}

// GameKey is the natural key of a game: calendar date plus both teams
type GameKey struct {
	Date       string
	HomeTeamID int
	AwayTeamID int
}

// NewGameKey normalizes the date to YYYY-MM-DD so stored and parsed dates key identically
func NewGameKey(date time.Time, homeTeamID, awayTeamID int) GameKey {
	return GameKey{
		Date:       date.Format(GameDateLayout),
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
	}
}

// Key returns the game's natural key
func (g *Game) Key() GameKey {
	return NewGameKey(g.GameDate, g.HomeTeamID, g.AwayTeamID)
}

// NewCompletedGame builds a game row. Only finished games are ingested.
// An empty location is stored as NULL rather than an empty string.
func NewCompletedGame(seasonID int, date time.Time, homeTeamID, awayTeamID int, location string) *Game {
	game := &Game{
		SeasonID:    seasonID,
		GameDate:    date,
		HomeTeamID:  homeTeamID,
		AwayTeamID:  awayTeamID,
		IsCompleted: true,
	}
	if location != "" {
		game.Location = sql.NullString{String: location, Valid: true}
	}
	return game
}
