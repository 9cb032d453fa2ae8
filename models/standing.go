package models

// TiebreakValue is one computed tiebreak for a player or team. Sonneborn-
// Berger yields quarter-point values, so tiebreaks use float64; the inputs
// are integer half-points, so the values stay exact and deterministic.
type TiebreakValue struct {
	Name  Tiebreak `json:"name"`
	Value float64  `json:"value"`
}

// Standing is one row of a ranked section table. Rank is recomputed from
// the total order on every request and is never stored as ground truth.
type Standing struct {
	Player    *Player         `json:"player"`
	Score     *PlayerScore    `json:"score"`
	Tiebreaks []TiebreakValue `json:"tiebreaks,omitempty"`
	Rank      int             `json:"rank"`
}
