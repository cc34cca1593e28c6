package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-manager/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(ls services.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: ls}
}

// GetLeague godoc
// @Summary Лига
// @Tags league
// @Produce json
// @Success 200 {object} map[string]interface{} "league"
// @Failure 404 {object} map[string]string "Лига не создана"
// @Router /league [get]
func (h *LeagueHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	league, err := h.leagueService.GetLeague(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"league": league})
}

// Standings godoc
// @Summary Таблица лиги
// @Tags league
// @Produce json
// @Success 200 {object} map[string]interface{} "standings"
// @Router /league/standings [get]
func (h *LeagueHandler) Standings(w http.ResponseWriter, r *http.Request) {
	table, err := h.leagueService.Standings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"standings": table})
}

// SetupLeague godoc
// @Summary Создать лигу
// @Description Заменяет текущую лигу и сразу генерирует календарь.
// @Tags league
// @Accept json
// @Produce json
// @Param body body services.SetupLeagueInput true "Лига"
// @Success 201 {object} map[string]interface{} "league"
// @Security BearerAuth
// @Router /league [put]
func (h *LeagueHandler) SetupLeague(w http.ResponseWriter, r *http.Request) {
	var input services.SetupLeagueInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	league, err := h.leagueService.SetupLeague(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"league": league})
}

func (h *LeagueHandler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	if err := h.leagueService.DeleteLeague(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeagueHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	var input teamIDRequest
	if !decodeAndValidate(w, r, &input) {
		return
	}
	if err := h.leagueService.AddTeam(r.Context(), input.TeamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeagueHandler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.leagueService.RemoveTeam(r.Context(), chi.URLParam(r, "teamID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeagueHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var input services.ModeInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	if err := h.leagueService.SetMode(r.Context(), input.Mode); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeagueHandler) SetRounds(w http.ResponseWriter, r *http.Request) {
	var input services.RoundsInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	if err := h.leagueService.SetRounds(r.Context(), input.Rounds); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeagueHandler) GenerateMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.leagueService.GenerateMatches(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeagueHandler) AddManualMatch(w http.ResponseWriter, r *http.Request) {
	var input services.ManualMatchInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	match, err := h.leagueService.AddManualMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"match": match})
}

func (h *LeagueHandler) RemoveManualMatch(w http.ResponseWriter, r *http.Request) {
	if err := h.leagueService.RemoveManualMatch(r.Context(), chi.URLParam(r, "matchID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeagueHandler) ClearMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.leagueService.ClearMatches(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordScore godoc
// @Summary Записать результат матча лиги
// @Tags league
// @Accept json
// @Param matchID path string true "Match ID"
// @Param body body services.ScoreInput true "Счет"
// @Success 204
// @Security BearerAuth
// @Router /league/matches/{matchID}/score [put]
func (h *LeagueHandler) RecordScore(w http.ResponseWriter, r *http.Request) {
	var input services.ScoreInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	if err := h.leagueService.RecordScore(r.Context(), chi.URLParam(r, "matchID"), input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeagueHandler) AddZone(w http.ResponseWriter, r *http.Request) {
	var input services.ZoneInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	zone, err := h.leagueService.AddZone(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"zone": zone})
}

func (h *LeagueHandler) RemoveZone(w http.ResponseWriter, r *http.Request) {
	if err := h.leagueService.RemoveZone(r.Context(), chi.URLParam(r, "zoneID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
