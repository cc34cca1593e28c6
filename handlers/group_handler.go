package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-manager/services"
)

type teamIDRequest struct {
	TeamID string `json:"teamId" validate:"required"`
}

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(gs services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: gs}
}

// ListGroups godoc
// @Summary Список групп
// @Tags groups
// @Produce json
// @Success 200 {object} map[string]interface{} "groups"
// @Router /groups [get]
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"groups": groups})
}

// GetGroup godoc
// @Summary Группа по ID
// @Tags groups
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} map[string]interface{} "group"
// @Failure 404 {object} map[string]string "Группа не найдена"
// @Router /groups/{groupID} [get]
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groupService.GetGroup(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"group": group})
}

// Standings godoc
// @Summary Турнирная таблица группы
// @Description Очки, разница, забитые, затем название. Зоны классификации проставляются по месту.
// @Tags groups
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} map[string]interface{} "standings"
// @Router /groups/{groupID}/standings [get]
func (h *GroupHandler) Standings(w http.ResponseWriter, r *http.Request) {
	table, err := h.groupService.Standings(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"standings": table})
}

// CreateGroup godoc
// @Summary Создать группу
// @Tags groups
// @Accept json
// @Produce json
// @Param body body services.CreateGroupInput true "Группа"
// @Success 201 {object} map[string]interface{} "group"
// @Security BearerAuth
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var input services.CreateGroupInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	group, err := h.groupService.CreateGroup(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"group": group})
}

// DistributeTeams godoc
// @Summary Случайно распределить команды по группам
// @Description Все существующие группы заменяются.
// @Tags groups
// @Accept json
// @Produce json
// @Param body body services.DistributeInput true "Параметры распределения"
// @Success 201 {object} map[string]interface{} "groups"
// @Security BearerAuth
// @Router /groups/distribute [post]
func (h *GroupHandler) DistributeTeams(w http.ResponseWriter, r *http.Request) {
	var input services.DistributeInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	groups, err := h.groupService.DistributeTeams(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"groups": groups})
}

func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.DeleteGroup(r.Context(), chi.URLParam(r, "groupID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	var input teamIDRequest
	if !decodeAndValidate(w, r, &input) {
		return
	}
	if err := h.groupService.AddTeam(r.Context(), chi.URLParam(r, "groupID"), input.TeamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.RemoveTeam(r.Context(), chi.URLParam(r, "groupID"), chi.URLParam(r, "teamID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetMode godoc
// @Summary Режим генерации матчей
// @Description Смена режима очищает список матчей группы.
// @Tags groups
// @Accept json
// @Param groupID path string true "Group ID"
// @Param body body services.ModeInput true "automatic | manual"
// @Success 204
// @Security BearerAuth
// @Router /groups/{groupID}/mode [put]
func (h *GroupHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var input services.ModeInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	if err := h.groupService.SetMode(r.Context(), chi.URLParam(r, "groupID"), input.Mode); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) SetRounds(w http.ResponseWriter, r *http.Request) {
	var input services.RoundsInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	if err := h.groupService.SetRounds(r.Context(), chi.URLParam(r, "groupID"), input.Rounds); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateMatches godoc
// @Summary Сгенерировать круговой календарь
// @Description Заменяет все матчи группы, результаты теряются.
// @Tags groups
// @Param groupID path string true "Group ID"
// @Success 204
// @Failure 422 {object} map[string]string "Группа в ручном режиме"
// @Security BearerAuth
// @Router /groups/{groupID}/matches/generate [post]
func (h *GroupHandler) GenerateMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.GenerateMatches(r.Context(), chi.URLParam(r, "groupID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) AddManualMatch(w http.ResponseWriter, r *http.Request) {
	var input services.ManualMatchInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	match, err := h.groupService.AddManualMatch(r.Context(), chi.URLParam(r, "groupID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"match": match})
}

func (h *GroupHandler) RemoveManualMatch(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.RemoveManualMatch(r.Context(), chi.URLParam(r, "groupID"), chi.URLParam(r, "matchID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) ClearMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.ClearMatches(r.Context(), chi.URLParam(r, "groupID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordScore godoc
// @Summary Записать результат матча группы
// @Tags groups
// @Accept json
// @Param groupID path string true "Group ID"
// @Param matchID path string true "Match ID"
// @Param body body services.ScoreInput true "Счет"
// @Success 204
// @Failure 422 {object} map[string]string "Отрицательный счет или матч с TBD"
// @Security BearerAuth
// @Router /groups/{groupID}/matches/{matchID}/score [put]
func (h *GroupHandler) RecordScore(w http.ResponseWriter, r *http.Request) {
	var input services.ScoreInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	err := h.groupService.RecordScore(r.Context(), chi.URLParam(r, "groupID"), chi.URLParam(r, "matchID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) AddZone(w http.ResponseWriter, r *http.Request) {
	var input services.ZoneInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	zone, err := h.groupService.AddZone(r.Context(), chi.URLParam(r, "groupID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"zone": zone})
}

func (h *GroupHandler) RemoveZone(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.RemoveZone(r.Context(), chi.URLParam(r, "groupID"), chi.URLParam(r, "zoneID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
