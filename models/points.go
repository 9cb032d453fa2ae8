package models

import (
	"fmt"
	"strconv"
)

// Points is a score stored in half-point units. Chess scores accumulate in
// halves, so an integer representation avoids floating-point drift across
// many rounds of 0.5 additions.
type Points int

const (
	NoPoints  Points = 0
	HalfPoint Points = 1
	FullPoint Points = 2
)

// Float converts to the conventional decimal representation (1.0, 0.5, ...).
func (p Points) Float() float64 {
	return float64(p) / 2
}

func (p Points) String() string {
	if p%2 == 0 {
		return strconv.Itoa(int(p / 2))
	}
	if p < 0 {
		return fmt.Sprintf("-%d.5", (-p)/2)
	}
	return fmt.Sprintf("%d.5", p/2)
}

// MarshalJSON renders points as a plain JSON number (e.g. 1.5).
func (p Points) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, p.Float(), 'f', -1, 64), nil
}

func (p *Points) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("points must be a number: %w", err)
	}
	doubled := v * 2
	if doubled != float64(int(doubled)) {
		return fmt.Errorf("points must be a multiple of 0.5, got %v", v)
	}
	*p = Points(int(doubled))
	return nil
}
