package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-manager/services"
)

const maxExportBytes = 10 << 20

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(es services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: es}
}

// StoreExport godoc
// @Summary Загрузить изображение таблицы или сетки
// @Description Тело запроса - само изображение, тип берется из Content-Type.
// @Tags exports
// @Accept image/png,image/jpeg,image/webp
// @Produce json
// @Success 201 {object} services.ExportResult
// @Failure 400 {object} map[string]string "Не изображение"
// @Failure 413 {object} map[string]string "Файл больше 10 МБ"
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Router /exports [post]
func (h *ExportHandler) StoreExport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxExportBytes)

	result, err := h.exportService.StoreExport(r.Context(), r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			errorResponse(w, r, http.StatusRequestEntityTooLarge, "export exceeds the 10MB limit")
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, result)
}

// DeleteExport godoc
// @Summary Удалить загруженное изображение
// @Tags exports
// @Param exportID path string true "Имя файла, например 3f2a...png"
// @Success 204
// @Security BearerAuth
// @Router /exports/{exportID} [delete]
func (h *ExportHandler) DeleteExport(w http.ResponseWriter, r *http.Request) {
	key := services.ExportKey(chi.URLParam(r, "exportID"))
	if err := h.exportService.DeleteExport(r.Context(), key); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
