package models

// Team represents a basketball team row from basketballteams.
// Teams are reference data: the importer looks them up but never writes them.
type Team struct {
	ID       int    `db:"id"`
	Abbr     string `db:"abbr"`
	TeamName string `db:"team_name"`
}
