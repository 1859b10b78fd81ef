package statsfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "Abbr,Opponent,HomeAway,Season,Date,Location,PlayerName,Jersey,StarterFlag,Mins,Pts,FGM,FGA,FG_Pct,3PTM,3PTA,3PT_Pct,FTM,FTA,FT_Pct,TS_Pct,eFG_Pct,Reb_O,Reb_D,Reb_T,AST,TO,STL,BLK,PF"

const testLine = "BOS,Lakers,Home,2024-25,2024-11-05,TD Garden,Jayson Tatum,0,True,36.0,27,10,22,0.455,3,9,0.333,4,4,1.0,0.58,0.52,1,7,8,5,2,1,0,2"

func TestNewReader_ReadsRows(t *testing.T) {
	r, err := NewReader(strings.NewReader(testHeader + "\n" + testLine + "\n"))
	require.NoError(t, err, "Should accept a complete header")

	row, err := r.Next()
	require.NoError(t, err, "Should read the first record")
	assert.Equal(t, "BOS", row.Get(ColAbbr))
	assert.Equal(t, "Jayson Tatum", row.Get(ColPlayerName))
	assert.Equal(t, 2, row.Line())
	assert.True(t, row.IsStarter())
	assert.True(t, row.IsHome())

	in := row.StatsInput()
	assert.Equal(t, int32(36), in.MinutesPlayed.Int32)
	assert.Equal(t, int32(27), in.Points.Int32)
	assert.InDelta(t, 0.455, in.FieldGoalPercentage.Float64, 1e-9)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err, "Should report end of input")
}

func TestNewReader_SkipsBOM(t *testing.T) {
	r, err := NewReader(strings.NewReader("\xEF\xBB\xBF" + testHeader + "\n" + testLine + "\n"))
	require.NoError(t, err, "BOM should not break header matching")

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "BOS", row.Get(ColAbbr))
}

func TestNewReader_MissingColumns(t *testing.T) {
	header := strings.Replace(testHeader, "StarterFlag", "starterflag", 1)

	_, err := NewReader(strings.NewReader(header + "\n"))
	require.Error(t, err, "Header names are case-sensitive")
	assert.True(t, errors.Is(err, ErrMissingColumns))
	assert.Contains(t, err.Error(), "StarterFlag")
}

func TestNewReader_EmptyInput(t *testing.T) {
	_, err := NewReader(strings.NewReader(""))
	assert.Error(t, err, "Empty input has no header")
}

func TestReader_ShortRecord(t *testing.T) {
	r, err := NewReader(strings.NewReader(testHeader + "\nBOS,Lakers,Away\n"))
	require.NoError(t, err)

	row, err := r.Next()
	require.NoError(t, err, "Short records are tolerated")
	assert.Equal(t, "Away", row.Get(ColHomeAway))
	assert.Equal(t, "", row.Get(ColPF))
	assert.False(t, row.IsHome())
	assert.False(t, row.StatsInput().Points.Valid)
}

func TestRow_StarterFlagExactMatch(t *testing.T) {
	for _, flag := range []string{"true", "TRUE", "1", "yes", " True"} {
		row := NewRow(map[string]string{ColStarterFlag: flag})
		assert.False(t, row.IsStarter(), "Flag %q should not mark a starter", flag)
	}
	assert.True(t, NewRow(map[string]string{ColStarterFlag: "True"}).IsStarter())
}

func TestRow_String(t *testing.T) {
	row := NewRow(map[string]string{ColAbbr: "BOS", ColPts: "27"})
	assert.Equal(t, `{Abbr="BOS", Pts="27"}`, row.String())
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, os.WriteFile(path, []byte(testHeader+"\n"+testLine+"\n"), 0o600))

	r, err := Open(path)
	require.NoError(t, err, "Should open a valid file")
	defer r.Close()

	assert.Len(t, r.Header(), len(RequiredColumns))

	_, err = Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err, "Missing file should fail")
}
