package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-manager/services"
)

type KnockoutHandler struct {
	knockoutService services.KnockoutService
}

func NewKnockoutHandler(ks services.KnockoutService) *KnockoutHandler {
	return &KnockoutHandler{knockoutService: ks}
}

// GetKnockout godoc
// @Summary Сетка плей-офф
// @Tags knockout
// @Produce json
// @Success 200 {object} map[string]interface{} "knockoutStage"
// @Failure 404 {object} map[string]string "Плей-офф не создан"
// @Router /knockout [get]
func (h *KnockoutHandler) GetKnockout(w http.ResponseWriter, r *http.Request) {
	stage, err := h.knockoutService.GetKnockout(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"knockoutStage": stage})
}

// SetupKnockout godoc
// @Summary Создать сетку плей-офф
// @Description numTeams - степень двойки; teamIds - слоты по порядку, слот 2k играет со слотом 2k+1.
// @Tags knockout
// @Accept json
// @Produce json
// @Param body body services.SetupKnockoutInput true "Сетка"
// @Success 201 {object} map[string]interface{} "knockoutStage"
// @Failure 422 {object} map[string]string "Не степень двойки, неверное число слотов или повтор команды"
// @Security BearerAuth
// @Router /knockout [put]
func (h *KnockoutHandler) SetupKnockout(w http.ResponseWriter, r *http.Request) {
	var input services.SetupKnockoutInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	stage, err := h.knockoutService.SetupKnockout(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"knockoutStage": stage})
}

func (h *KnockoutHandler) DeleteKnockout(w http.ResponseWriter, r *http.Request) {
	if err := h.knockoutService.DeleteKnockout(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordScore godoc
// @Summary Записать результат матча плей-офф
// @Description Ничьи запрещены. Завершенный раунд создает следующий, пересчитывает его при исправлении счета или определяет чемпиона.
// @Tags knockout
// @Accept json
// @Produce json
// @Param roundID path string true "Round ID"
// @Param matchID path string true "Match ID"
// @Param body body services.ScoreInput true "Счет"
// @Success 200 {object} map[string]interface{} "knockoutStage"
// @Failure 422 {object} map[string]string "Ничья или матч с TBD"
// @Security BearerAuth
// @Router /knockout/rounds/{roundID}/matches/{matchID}/score [put]
func (h *KnockoutHandler) RecordScore(w http.ResponseWriter, r *http.Request) {
	var input services.ScoreInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	stage, err := h.knockoutService.RecordScore(r.Context(), chi.URLParam(r, "roundID"), chi.URLParam(r, "matchID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"knockoutStage": stage})
}

// ReassignTeam godoc
// @Summary Заменить команду в несыгранном матче
// @Tags knockout
// @Accept json
// @Produce json
// @Param roundID path string true "Round ID"
// @Param matchID path string true "Match ID"
// @Param body body services.ReassignTeamInput true "Сторона (a|b) и команда"
// @Success 200 {object} map[string]interface{} "knockoutStage"
// @Security BearerAuth
// @Router /knockout/rounds/{roundID}/matches/{matchID}/team [put]
func (h *KnockoutHandler) ReassignTeam(w http.ResponseWriter, r *http.Request) {
	var input services.ReassignTeamInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	stage, err := h.knockoutService.ReassignTeam(r.Context(), chi.URLParam(r, "roundID"), chi.URLParam(r, "matchID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"knockoutStage": stage})
}
