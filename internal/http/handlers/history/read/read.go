// Package read реализует HTTP-обработчик чтения одной записи истории по ID.
//
// Чужая и несуществующая записи неразличимы для клиента: обе дают 404.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ravenmx/calculator-service/internal/http/middlewarectx"
	"github.com/ravenmx/calculator-service/internal/http/response"
	"github.com/ravenmx/calculator-service/internal/lib/sl"
	"github.com/ravenmx/calculator-service/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения записи.
type Service interface {
	Read(ctx context.Context, username string, id int64) (*models.Operation, error)
}

// Handler обрабатывает запросы на чтение записи операции по ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Запись истории по ID
// @Description Возвращает одну запись вычисления, принадлежащую вызывающему пользователю.
// @Tags History
// @Produce  json
// @Param id path int true "ID записи"
// @Success 200 {object} map[string]any "Запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Невалидный токен"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Security Bearer
// @Router /history/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.history.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	record, err := h.service.Read(r.Context(), username, id)
	if err != nil {
		log.Error("failed to read operation", sl.Err(err))
		status := response.StatusFor(err)
		w.WriteHeader(status)
		if status == http.StatusInternalServerError {
			render.JSON(w, r, response.Error("failed to read operation"))
			return
		}
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("operation served", slog.Int64("id", record.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"operation": record,
	}))
}
