package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Numeric is a float64 that also accepts quoted numbers and empty strings on
// the wire. Editing surfaces submit raw input text; anything unparseable
// coerces to zero rather than failing the edit.
type Numeric float64

// UnmarshalJSON implements lenient numeric decoding.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Numeric(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Numeric(f)
	return nil
}

// Float returns the underlying float64.
func (n Numeric) Float() float64 {
	return float64(n)
}
