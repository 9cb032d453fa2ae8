package models

import "time"

// Team groups players for team-format scoring. Membership is carried on the
// Player via TeamID.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Section      string    `json:"section,omitempty" db:"section"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Members []Player `json:"members,omitempty" db:"-"`
}

// TeamStanding aggregates member results under the section's scoring method.
type TeamStanding struct {
	Team *Team `json:"team"`
	// Score is the team total under the configured method.
	Score Points `json:"score"`
	// RoundScores holds cumulative team score after each round, for
	// progressive display.
	RoundScores []Points        `json:"round_scores"`
	GamesPlayed int             `json:"games_played"`
	Tiebreaks   []TiebreakValue `json:"tiebreaks,omitempty"`
	Rank        int             `json:"rank"`
}
