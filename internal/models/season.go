package models

// Sport identifiers used by the shared players/seasons tables
const (
	BasketballSportID = 1
)

// ActiveSeasonName is the only season created with is_active = true
const ActiveSeasonName = "2024-25"

// Season represents a season row
type Season struct {
	ID       int    `db:"id"`
	SportID  int    `db:"sport_id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

// NewSeason builds a basketball season, marking it active when it is the current one
func NewSeason(name string) *Season {
	return &Season{
		SportID:  BasketballSportID,
		Name:     name,
		IsActive: name == ActiveSeasonName,
	}
}
