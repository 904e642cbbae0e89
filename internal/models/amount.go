package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Amount is a monetary value tolerant of sloppy provider JSON: upstream
// sources deliver numbers and numeric strings interchangeably, and sometimes
// garbage. Anything that does not parse decodes as 0 instead of failing the
// whole bundle.
type Amount float64

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = 0
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*a = Amount(v)
		}
		return nil
	}
	if v, err := strconv.ParseFloat(string(data), 64); err == nil {
		*a = Amount(v)
	}
	return nil
}

// Float64 returns the plain float value for arithmetic.
func (a Amount) Float64() float64 {
	return float64(a)
}
