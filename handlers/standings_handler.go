package handlers

import (
	"net/http"

	"github.com/castlegate/pairing-engine/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// Standings are computed on demand from the stored pairings, so these are
// POST endpoints: the section configuration (tiebreak order, bye value,
// buchholz cut) arrives in the body.

// IndividualHandler обрабатывает POST /tournaments/{tournamentID}/sections/{section}/standings
func (h *StandingsHandler) IndividualHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, section, err := sectionParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SectionStandingsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.Section = section

	standings, err := h.standingsService.Individual(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ThroughRoundHandler обрабатывает POST /tournaments/{tournamentID}/sections/{section}/standings/rounds/{round}
func (h *StandingsHandler) ThroughRoundHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, section, err := sectionParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	round, err := getRoundFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SectionStandingsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.Section = section

	standings, err := h.standingsService.IndividualThroughRound(r.Context(), tournamentID, input, round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings, "round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TeamHandler обрабатывает POST /tournaments/{tournamentID}/sections/{section}/standings/teams
func (h *StandingsHandler) TeamHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, section, err := sectionParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SectionStandingsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.Section = section

	standings, err := h.standingsService.Team(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team_standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AllSectionsHandler обрабатывает POST /tournaments/{tournamentID}/standings
func (h *StandingsHandler) AllSectionsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Sections []services.SectionStandingsInput `json:"sections"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sections, err := h.standingsService.AllSections(r.Context(), tournamentID, input.Sections)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sections": sections}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
