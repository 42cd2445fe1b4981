package medusa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Amount is a money value in minor units. The backend serializes totals as
// plain JSON numbers that may carry a fraction (tax-inclusive totals), or
// occasionally as numeric strings; both decode, rounded half away from zero.
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		b = []byte(s)
	}
	v, err := ParseAmount(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAmount reads an integer or decimal number.
func ParseAmount(s string) (Amount, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Amount(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("medusa: invalid amount %q", s)
	}
	r := math.Round(f)
	if r > math.MaxInt64 || r < math.MinInt64 {
		return 0, fmt.Errorf("medusa: amount %q out of range", s)
	}
	return Amount(r), nil
}
