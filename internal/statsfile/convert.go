package statsfile

// convert.go turns raw cell text into nullable numbers.
//
// Box score exports are produced by hand-maintained spreadsheets, so cells are
// routinely blank, padded, or hold things like "-" or "DNP". None of that is an
// error: the functions below return a value with Valid=false and the caller
// decides the default.

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
)

// ParseFloat converts a cell to sql.NullFloat64.
// Returns invalid for blank, non-numeric, NaN or infinite input.
func ParseFloat(s string) sql.NullFloat64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullFloat64{Valid: false}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return sql.NullFloat64{Valid: false}
	}

	return sql.NullFloat64{Float64: f, Valid: true}
}

// ParseInt converts a cell to sql.NullInt32.
// The cell is read as a float and truncated toward zero, so "13.0" yields 13.
// Returns invalid for blank or non-numeric input and for values outside int32.
func ParseInt(s string) sql.NullInt32 {
	f := ParseFloat(s)
	if !f.Valid {
		return sql.NullInt32{Valid: false}
	}

	t := math.Trunc(f.Float64)
	if t > math.MaxInt32 || t < math.MinInt32 {
		return sql.NullInt32{Valid: false}
	}

	return sql.NullInt32{Int32: int32(t), Valid: true}
}
