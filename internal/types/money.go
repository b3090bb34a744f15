package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// USD is a fixed-point dollar amount held in 1/10000ths of a dollar. Prices
// and royalty amounts are exact; no float ever touches the ledger. The JSON
// and string form always carries four decimals, e.g. "5.0000".
type USD int64

const usdScale = 10000

func ParseUSD(s string) (USD, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 4 {
		return 0, fmt.Errorf("amount %q has more than four decimal places", s)
	}
	for len(frac) < 4 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	v := w*usdScale + f
	if neg {
		v = -v
	}
	return USD(v), nil
}

func (u USD) String() string {
	v := int64(u)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%04d", sign, v/usdScale, v%usdScale)
}

func (u USD) IsZero() bool { return u == 0 }

func (u USD) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *USD) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Tolerate bare numbers from older clients.
		var f json.Number
		if nerr := json.Unmarshal(data, &f); nerr != nil {
			return err
		}
		s = f.String()
	}
	v, err := ParseUSD(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u USD) Value() (driver.Value, error) { return int64(u), nil }

func (u *USD) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*u = USD(v)
		return nil
	case []byte:
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return err
		}
		*u = USD(parsed)
		return nil
	case nil:
		*u = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into USD", src)
	}
}
