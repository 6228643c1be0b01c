package core

import (
	"fmt"
	"time"
)

// Month is a calendar month, rendered as "YYYY-MM".
type Month struct {
	Year  int
	Month time.Month
}

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category CategoryKind `json:"category"`
	Amount   Money        `json:"amount"`
	Share    float64      `json:"share"` // percent of the aggregated total
}

// MonthAmount is a total for one calendar month.
type MonthAmount struct {
	Month  Month `json:"month"`
	Amount Money `json:"amount"`
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Next returns the following month, rolling December over into January.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(b []byte) error {
	parsed, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
