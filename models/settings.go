package models

import "fmt"

// PairingSystem выбирает алгоритм жеребьёвки секции.
type PairingSystem string

const (
	SystemFideDutch         PairingSystem = "fide_dutch"
	SystemUSChess           PairingSystem = "us_chess"
	SystemRoundRobin        PairingSystem = "round_robin"
	SystemQuad              PairingSystem = "quad"
	SystemSingleElimination PairingSystem = "single_elimination"
)

func (s PairingSystem) Valid() bool {
	switch s {
	case SystemFideDutch, SystemUSChess, SystemRoundRobin, SystemQuad, SystemSingleElimination:
		return true
	}
	return false
}

// Swiss reports whether the system uses score-group pairing. Acceleration
// applies only to Swiss systems.
func (s PairingSystem) Swiss() bool {
	return s == SystemFideDutch || s == SystemUSChess
}

// ColorProfile selects the color-assignment rule set.
type ColorProfile string

const (
	ColorProfileFide   ColorProfile = "fide"
	ColorProfileUSCF   ColorProfile = "uscf"
	ColorProfileSimple ColorProfile = "simple"
)

func (p ColorProfile) Valid() bool {
	return p == ColorProfileFide || p == ColorProfileUSCF || p == ColorProfileSimple
}

// AccelerationType selects how early-round score groups are perturbed.
type AccelerationType string

const (
	AccelerationStandard   AccelerationType = "standard"
	AccelerationAddedScore AccelerationType = "added_score"
	AccelerationSixths     AccelerationType = "sixths"
)

type AccelerationConfig struct {
	Enabled   bool             `json:"enabled"`
	Type      AccelerationType `json:"type,omitempty"`
	Rounds    int              `json:"rounds,omitempty"`    // number of early rounds accelerated
	Fraction  Points           `json:"fraction,omitempty"`  // bonus for added_score
	Threshold int              `json:"threshold,omitempty"` // minimum field size to accelerate
}

// ByeConfig controls bye scoring. Byes award a full point unless
// HalfPointBye is set, so the zero value matches the default rules.
type ByeConfig struct {
	HalfPointBye         bool `json:"half_point_bye"`
	AvoidUnratedDropping bool `json:"avoid_unrated_dropping"`
}

// Value returns the points a bye awards under this configuration.
func (b ByeConfig) Value() Points {
	if b.HalfPointBye {
		return HalfPoint
	}
	return FullPoint
}

// Tiebreak names one tiebreak method.
type Tiebreak string

const (
	TiebreakBuchholz        Tiebreak = "buchholz"
	TiebreakSonnebornBerger Tiebreak = "sonneborn_berger"
	TiebreakDirectEncounter Tiebreak = "direct_encounter"
	TiebreakPerformance     Tiebreak = "performance"
)

func (t Tiebreak) Valid() bool {
	switch t {
	case TiebreakBuchholz, TiebreakSonnebornBerger, TiebreakDirectEncounter, TiebreakPerformance:
		return true
	}
	return false
}

// BuchholzCut drops the N lowest and/or highest opponent scores from the sum.
type BuchholzCut struct {
	Lowest  int `json:"lowest"`
	Highest int `json:"highest"`
}

// TeamScoringMethod selects how individual results roll up into team scores.
type TeamScoringMethod string

const (
	TeamScoringAllPlayers TeamScoringMethod = "all_players"
	TeamScoringTopPlayers TeamScoringMethod = "top_players"
)

// SectionConfig is the full pairing and ranking configuration for one
// section. It is supplied explicitly with every generation call; the engine
// keeps no ambient mutable settings.
type SectionConfig struct {
	System       PairingSystem      `json:"system"`
	Rounds       int                `json:"rounds"`
	Tiebreaks    []Tiebreak         `json:"tiebreaks,omitempty"`
	Acceleration AccelerationConfig `json:"acceleration"`
	ColorProfile ColorProfile       `json:"color_profile"`
	// USCFColorLimit is the rating difference below which the USCF color rule
	// still honors equalization over the higher-rated player's due color.
	USCFColorLimit int               `json:"uscf_color_limit,omitempty"`
	Bye            ByeConfig         `json:"bye"`
	BuchholzCut    BuchholzCut       `json:"buchholz_cut"`
	TeamScoring    TeamScoringMethod `json:"team_scoring,omitempty"`
	TopPlayers     int               `json:"top_players,omitempty"` // N for top_players scoring
}

// DefaultSectionConfig returns the configuration applied when the caller
// omits fields: Swiss Dutch, full-point byes, FIDE colors, and the default
// tiebreak order Buchholz, Sonneborn-Berger, direct encounter.
func DefaultSectionConfig() SectionConfig {
	return SectionConfig{
		System:         SystemFideDutch,
		Rounds:         5,
		Tiebreaks:      []Tiebreak{TiebreakBuchholz, TiebreakSonnebornBerger, TiebreakDirectEncounter},
		ColorProfile:   ColorProfileFide,
		USCFColorLimit: 80,
		TeamScoring:    TeamScoringAllPlayers,
		TopPlayers:     4,
	}
}

// Normalize fills zero-valued fields with defaults so partially specified
// configurations from the API remain usable.
func (c *SectionConfig) Normalize() {
	def := DefaultSectionConfig()
	if c.System == "" {
		c.System = def.System
	}
	if c.Rounds == 0 {
		c.Rounds = def.Rounds
	}
	if len(c.Tiebreaks) == 0 {
		c.Tiebreaks = def.Tiebreaks
	}
	if c.ColorProfile == "" {
		c.ColorProfile = def.ColorProfile
	}
	if c.USCFColorLimit == 0 {
		c.USCFColorLimit = def.USCFColorLimit
	}
	if c.TeamScoring == "" {
		c.TeamScoring = def.TeamScoring
	}
	if c.TopPlayers == 0 {
		c.TopPlayers = def.TopPlayers
	}
	if c.Acceleration.Enabled {
		if c.Acceleration.Type == "" {
			c.Acceleration.Type = AccelerationStandard
		}
		if c.Acceleration.Rounds == 0 {
			c.Acceleration.Rounds = 2
		}
		if c.Acceleration.Fraction == 0 {
			c.Acceleration.Fraction = FullPoint
		}
	}
}

func (c *SectionConfig) Validate() error {
	if !c.System.Valid() {
		return fmt.Errorf("unknown pairing system %q", c.System)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	for _, tb := range c.Tiebreaks {
		if !tb.Valid() {
			return fmt.Errorf("unknown tiebreak %q", tb)
		}
	}
	if !c.ColorProfile.Valid() {
		return fmt.Errorf("unknown color profile %q", c.ColorProfile)
	}
	if c.Acceleration.Enabled {
		switch c.Acceleration.Type {
		case AccelerationStandard, AccelerationAddedScore, AccelerationSixths:
		default:
			return fmt.Errorf("unknown acceleration type %q", c.Acceleration.Type)
		}
		if c.Acceleration.Rounds < 1 {
			return fmt.Errorf("acceleration rounds must be positive, got %d", c.Acceleration.Rounds)
		}
	}
	if c.BuchholzCut.Lowest < 0 || c.BuchholzCut.Highest < 0 {
		return fmt.Errorf("buchholz cut values must be non-negative")
	}
	if c.TeamScoring != TeamScoringAllPlayers && c.TeamScoring != TeamScoringTopPlayers {
		return fmt.Errorf("unknown team scoring method %q", c.TeamScoring)
	}
	if c.TeamScoring == TeamScoringTopPlayers && c.TopPlayers < 1 {
		return fmt.Errorf("top_players count must be positive, got %d", c.TopPlayers)
	}
	return nil
}
