package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/castlegate/pairing-engine/models"
	"github.com/castlegate/pairing-engine/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PairingHandler struct {
	pairingService services.PairingService
}

func NewPairingHandler(ps services.PairingService) *PairingHandler {
	return &PairingHandler{pairingService: ps}
}

// GenerateHandler обрабатывает POST /tournaments/{tournamentID}/sections/{section}/rounds
func (h *PairingHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, section, err := sectionParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateRoundInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pairings, err := h.pairingService.GenerateRound(r.Context(), tournamentID, section, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"pairings": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRoundHandler обрабатывает GET /tournaments/{tournamentID}/sections/{section}/rounds/{round}
func (h *PairingHandler) GetRoundHandler(w http.ResponseWriter, r *http.Request) {
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

	pairings, err := h.pairingService.GetRound(r.Context(), tournamentID, section, round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairings": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListSectionHandler обрабатывает GET /tournaments/{tournamentID}/sections/{section}/pairings
func (h *PairingHandler) ListSectionHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, section, err := sectionParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pairings, err := h.pairingService.GetSection(r.Context(), tournamentID, section)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairings": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetRoundHandler обрабатывает DELETE /tournaments/{tournamentID}/sections/{section}/rounds/{round}
func (h *PairingHandler) ResetRoundHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := h.pairingService.ResetRound(r.Context(), tournamentID, section, round); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordResultHandler обрабатывает PATCH /tournaments/{tournamentID}/pairings/{pairingID}/result
func (h *PairingHandler) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, pairingID, err := pairingParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Result models.Result `json:"result"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pairing, err := h.pairingService.RecordResult(r.Context(), tournamentID, pairingID, input.Result)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairing": pairing}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SwapPlayersHandler обрабатывает PATCH /tournaments/{tournamentID}/pairings/{pairingID}/players
func (h *PairingHandler) SwapPlayersHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, pairingID, err := pairingParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SwapPlayersInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pairing, err := h.pairingService.SwapPlayers(r.Context(), tournamentID, pairingID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairing": pairing}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateCustomHandler обрабатывает POST /tournaments/{tournamentID}/sections/{section}/pairings
func (h *PairingHandler) CreateCustomHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, section, err := sectionParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CustomPairingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pairing, err := h.pairingService.CreateCustom(r.Context(), tournamentID, section, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"pairing": pairing}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler обрабатывает DELETE /tournaments/{tournamentID}/pairings/{pairingID}
func (h *PairingHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, pairingID, err := pairingParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.pairingService.DeletePairing(r.Context(), tournamentID, pairingID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderBoardsHandler обрабатывает PUT /tournaments/{tournamentID}/sections/{section}/rounds/{round}/boards
func (h *PairingHandler) ReorderBoardsHandler(w http.ResponseWriter, r *http.Request) {
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

	var input struct {
		PairingIDs []uuid.UUID `json:"pairing_ids"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pairings, err := h.pairingService.ReorderBoards(r.Context(), tournamentID, section, round, input.PairingIDs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairings": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StatusHandler обрабатывает GET /tournaments/{tournamentID}/sections/{section}/status
func (h *PairingHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, section, err := sectionParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	totalRounds := 0
	if raw := r.URL.Query().Get("rounds"); raw != "" {
		totalRounds, err = strconv.Atoi(raw)
		if err != nil || totalRounds < 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid rounds parameter %q", raw))
			return
		}
	}

	status, err := h.pairingService.Status(r.Context(), tournamentID, section, totalRounds)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func sectionParams(r *http.Request) (int, string, error) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		return 0, "", err
	}
	section := chi.URLParam(r, "section")
	if section == "" {
		return 0, "", fmt.Errorf("missing section parameter")
	}
	return tournamentID, section, nil
}

func pairingParams(r *http.Request) (int, uuid.UUID, error) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		return 0, uuid.Nil, err
	}
	pairingID, err := getUUIDFromURL(r, "pairingID")
	if err != nil {
		return 0, uuid.Nil, err
	}
	return tournamentID, pairingID, nil
}
