package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-manager/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// ListTeams godoc
// @Summary Список команд
// @Tags teams
// @Produce json
// @Success 200 {object} map[string]interface{} "teams"
// @Router /teams [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

// SearchTeams godoc
// @Summary Нечеткий поиск команд по названию
// @Tags teams
// @Produce json
// @Param q query string false "Часть названия"
// @Success 200 {object} map[string]interface{} "teams"
// @Router /teams/search [get]
func (h *TeamHandler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.SearchTeams(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

// GetTeam godoc
// @Summary Команда по ID
// @Description "TBD" и "TBD_DELETED" возвращают фиксированные названия.
// @Tags teams
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{} "team"
// @Failure 404 {object} map[string]string "Команда не найдена"
// @Router /teams/{teamID} [get]
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// CreateTeam godoc
// @Summary Добавить команду
// @Tags teams
// @Accept json
// @Produce json
// @Param body body services.CreateTeamInput true "Название"
// @Success 201 {object} map[string]interface{} "team"
// @Failure 409 {object} map[string]string "Название уже занято"
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	team, err := h.teamService.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"team": team})
}

// CreateTeamsBulk godoc
// @Summary Добавить несколько команд через запятую
// @Tags teams
// @Accept json
// @Produce json
// @Param body body services.BulkTeamsInput true "Названия через запятую, кавычки допускаются"
// @Success 201 {object} map[string]interface{} "teams"
// @Security BearerAuth
// @Router /teams/bulk [post]
func (h *TeamHandler) CreateTeamsBulk(w http.ResponseWriter, r *http.Request) {
	var input services.BulkTeamsInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	teams, err := h.teamService.CreateTeamsBulk(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"teams": teams})
}

// RenameTeam godoc
// @Summary Переименовать команду
// @Tags teams
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param body body services.CreateTeamInput true "Новое название"
// @Success 200 {object} map[string]interface{} "team"
// @Security BearerAuth
// @Router /teams/{teamID} [put]
func (h *TeamHandler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	team, err := h.teamService.RenameTeam(r.Context(), chi.URLParam(r, "teamID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// DeleteTeam godoc
// @Summary Удалить команду
// @Description Команда удаляется из групп и лиги вместе с матчами; в сетке плей-офф заменяется на TBD_DELETED.
// @Tags teams
// @Param teamID path string true "Team ID"
// @Success 204
// @Security BearerAuth
// @Router /teams/{teamID} [delete]
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.teamService.DeleteTeam(r.Context(), chi.URLParam(r, "teamID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
