package models

import "database/sql"

// Player represents a player row. A player is distinct per team they are recorded under.
type Player struct {
	ID           int           `db:"id"`
	Name         string        `db:"name"`
	JerseyNumber sql.NullInt32 `db:"jersey_number"`
	TeamID       int           `db:"team_id"`
	SportID      int           `db:"sport_id"`
}

// PlayerKey is the natural key of a player
type PlayerKey struct {
	Name   string
	TeamID int
}

// Key returns the player's natural key
func (p *Player) Key() PlayerKey {
	return PlayerKey{Name: p.Name, TeamID: p.TeamID}
}

// NewPlayer builds a basketball player for the given team
func NewPlayer(name string, jersey sql.NullInt32, teamID int) *Player {
	return &Player{
		Name:         name,
		JerseyNumber: jersey,
		TeamID:       teamID,
		SportID:      BasketballSportID,
	}
}
