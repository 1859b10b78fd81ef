package statsfile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Lil-Chen05/TheBench/internal/models"
)

// Source columns. Names are matched exactly, including case.
const (
	ColAbbr        = "Abbr"
	ColOpponent    = "Opponent"
	ColHomeAway    = "HomeAway"
	ColSeason      = "Season"
	ColDate        = "Date"
	ColLocation    = "Location"
	ColPlayerName  = "PlayerName"
	ColJersey      = "Jersey"
	ColStarterFlag = "StarterFlag"
	ColMins        = "Mins"
	ColPts         = "Pts"
	ColFGM         = "FGM"
	ColFGA         = "FGA"
	ColFGPct       = "FG_Pct"
	Col3PTM        = "3PTM"
	Col3PTA        = "3PTA"
	Col3PTPct      = "3PT_Pct"
	ColFTM         = "FTM"
	ColFTA         = "FTA"
	ColFTPct       = "FT_Pct"
	ColTSPct       = "TS_Pct"
	ColEFGPct      = "eFG_Pct"
	ColRebO        = "Reb_O"
	ColRebD        = "Reb_D"
	ColRebT        = "Reb_T"
	ColAST         = "AST"
	ColTO          = "TO"
	ColSTL         = "STL"
	ColBLK         = "BLK"
	ColPF          = "PF"
)

// RequiredColumns must all be present in the header row
var RequiredColumns = []string{
	ColAbbr, ColOpponent, ColHomeAway, ColSeason, ColDate, ColLocation,
	ColPlayerName, ColJersey, ColStarterFlag,
	ColMins, ColPts,
	ColFGM, ColFGA, ColFGPct,
	Col3PTM, Col3PTA, Col3PTPct,
	ColFTM, ColFTA, ColFTPct,
	ColTSPct, ColEFGPct,
	ColRebO, ColRebD, ColRebT,
	ColAST, ColTO, ColSTL, ColBLK, ColPF,
}

// StarterTrue is the only StarterFlag value that marks a starter
const StarterTrue = "True"

// HomeIndicator is the HomeAway value meaning the row's own team hosted
const HomeIndicator = "Home"

// Row is one data record keyed by header name
type Row struct {
	columns map[string]int
	header  []string
	record  []string
	line    int
}

// NewRow builds a row from column values, mainly for tests
func NewRow(values map[string]string) Row {
	header := make([]string, 0, len(values))
	for name := range values {
		header = append(header, name)
	}
	sort.Strings(header)

	record := make([]string, len(header))
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
		record[i] = values[name]
	}
	return Row{columns: columns, header: header, record: record}
}

// Get returns the cell under column, or "" when the record is short
func (r Row) Get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

// Line returns the 1-based line number the record started on, 0 if unknown
func (r Row) Line() int {
	return r.line
}

// String renders the row as column=value pairs for diagnostics
func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range r.header {
		if i > 0 {
			b.WriteString(", ")
		}
		v := ""
		if i < len(r.record) {
			v = r.record[i]
		}
		fmt.Fprintf(&b, "%s=%q", name, v)
	}
	b.WriteByte('}')
	return b.String()
}

// IsStarter reports whether StarterFlag is exactly "True"
func (r Row) IsStarter() bool {
	return r.Get(ColStarterFlag) == StarterTrue
}

// IsHome reports whether the row's own team was the home team
func (r Row) IsHome() bool {
	return r.Get(ColHomeAway) == HomeIndicator
}

// StatsInput coerces the numeric columns of the row
func (r Row) StatsInput() *models.PlayerGameStatsInput {
	return &models.PlayerGameStatsInput{
		IsStarter: r.IsStarter(),

		MinutesPlayed: ParseInt(r.Get(ColMins)),
		Points:        ParseInt(r.Get(ColPts)),

		FieldGoalsMade:               ParseInt(r.Get(ColFGM)),
		FieldGoalsAttempted:          ParseInt(r.Get(ColFGA)),
		FieldGoalPercentage:          ParseFloat(r.Get(ColFGPct)),
		ThreePointMade:               ParseInt(r.Get(Col3PTM)),
		ThreePointAttempted:          ParseInt(r.Get(Col3PTA)),
		ThreePointPercentage:         ParseFloat(r.Get(Col3PTPct)),
		FreeThrowsMade:               ParseInt(r.Get(ColFTM)),
		FreeThrowsAttempted:          ParseInt(r.Get(ColFTA)),
		FreeThrowPercentage:          ParseFloat(r.Get(ColFTPct)),
		TrueShootingPercentage:       ParseFloat(r.Get(ColTSPct)),
		EffectiveFieldGoalPercentage: ParseFloat(r.Get(ColEFGPct)),

		OffensiveRebounds: ParseInt(r.Get(ColRebO)),
		DefensiveRebounds: ParseInt(r.Get(ColRebD)),
		TotalRebounds:     ParseInt(r.Get(ColRebT)),

		Assists:       ParseInt(r.Get(ColAST)),
		Turnovers:     ParseInt(r.Get(ColTO)),
		Steals:        ParseInt(r.Get(ColSTL)),
		Blocks:        ParseInt(r.Get(ColBLK)),
		PersonalFouls: ParseInt(r.Get(ColPF)),
	}
}
