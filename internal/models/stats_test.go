package models

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlayerGameStatsInput_ToPlayerGameStats(t *testing.T) {
	in := &PlayerGameStatsInput{
		IsStarter:           true,
		Points:              sql.NullInt32{Int32: 27, Valid: true},
		FieldGoalPercentage: sql.NullFloat64{Float64: 0.455, Valid: true},
	}

	stats := in.ToPlayerGameStats(7, 11, 3)

	assert.Equal(t, StatsKey{PlayerID: 7, GameID: 11}, stats.Key())
	assert.Equal(t, 3, stats.TeamID)
	assert.True(t, stats.IsStarter)
	assert.Equal(t, int32(27), stats.Points)
	assert.Equal(t, int32(0), stats.Assists, "Unset counts should default to zero")
	assert.True(t, stats.FieldGoalPercentage.Valid)
	assert.InDelta(t, 0.455, stats.FieldGoalPercentage.Float64, 1e-9)
	assert.False(t, stats.ThreePointPercentage.Valid, "Unset rates should stay NULL")
}

func TestNewSeason_ActivePolicy(t *testing.T) {
	assert.True(t, NewSeason("2024-25").IsActive)
	assert.False(t, NewSeason("2023-24").IsActive)
	assert.Equal(t, BasketballSportID, NewSeason("2023-24").SportID)
}

func TestGameKey_NormalizesDate(t *testing.T) {
	parsed, err := time.Parse(GameDateLayout, "2024-11-05")
	assert.NoError(t, err)

	stored := time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)
	game := NewCompletedGame(1, stored, 10, 20, "")

	assert.Equal(t, NewGameKey(parsed, 10, 20), game.Key())
	assert.True(t, game.IsCompleted)
	assert.False(t, game.Location.Valid)
}

func TestNewCompletedGame_Location(t *testing.T) {
	date := time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)

	assert.False(t, NewCompletedGame(1, date, 10, 20, "").Location.Valid, "Empty location should be NULL")

	game := NewCompletedGame(1, date, 10, 20, "TD Garden")
	assert.True(t, game.Location.Valid)
	assert.Equal(t, "TD Garden", game.Location.String)
}

func TestDedupeStats_LastWins(t *testing.T) {
	batch := []*PlayerGameStats{
		{PlayerID: 1, GameID: 1, Points: 10},
		{PlayerID: 2, GameID: 1, Points: 4},
		{PlayerID: 1, GameID: 1, Points: 12},
	}

	out := DedupeStats(batch)

	assert.Len(t, out, 2)
	assert.Equal(t, int32(12), out[0].Points, "Later duplicate should win")
	assert.Equal(t, 2, out[1].PlayerID)
}
