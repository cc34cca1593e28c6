package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-manager/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	archiveService    services.ArchiveService
}

func NewTournamentHandler(ts services.TournamentService, as services.ArchiveService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts, archiveService: as}
}

// Overview godoc
// @Summary Все данные турнира одним ответом
// @Description Команды, группы и лига с таблицами, плей-офф и история чемпионов.
// @Tags tournament
// @Produce json
// @Success 200 {object} services.Overview
// @Router /overview [get]
func (h *TournamentHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.tournamentService.Overview(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, overview)
}

// Reset godoc
// @Summary Сбросить турнир
// @Description Удаляет команды, группы, лигу и плей-офф. История чемпионов сохраняется.
// @Tags tournament
// @Success 204
// @Security BearerAuth
// @Router /reset [post]
func (h *TournamentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.ResetTournament(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListHistory godoc
// @Summary История чемпионов
// @Tags history
// @Produce json
// @Success 200 {object} map[string]interface{} "archivedWinners"
// @Router /history [get]
func (h *TournamentHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	winners, err := h.archiveService.ListArchivedWinners(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"archivedWinners": winners})
}

// ArchiveChampion godoc
// @Summary Сохранить чемпиона в историю
// @Tags history
// @Accept json
// @Produce json
// @Param body body services.ArchiveChampionInput true "Название турнира"
// @Success 201 {object} map[string]interface{} "archivedWinner"
// @Failure 422 {object} map[string]string "Чемпион еще не определен"
// @Security BearerAuth
// @Router /history [post]
func (h *TournamentHandler) ArchiveChampion(w http.ResponseWriter, r *http.Request) {
	var input services.ArchiveChampionInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	winner, err := h.archiveService.ArchiveChampion(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"archivedWinner": winner})
}

func (h *TournamentHandler) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.archiveService.DeleteArchivedWinner(r.Context(), chi.URLParam(r, "entryID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
