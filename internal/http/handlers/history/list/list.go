// Package list реализует HTTP-обработчик постраничной выборки истории операций.
//
// Необязательные параметры строки запроса operation, start_date и end_date
// (RFC3339) собираются в фильтр; отсутствующий параметр не сужает выборку.
// Выбираются только записи владельца токена.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ravenmx/calculator-service/internal/http/middlewarectx"
	"github.com/ravenmx/calculator-service/internal/http/response"
	"github.com/ravenmx/calculator-service/internal/lib/query"
	"github.com/ravenmx/calculator-service/internal/lib/sl"
	"github.com/ravenmx/calculator-service/internal/models"
)

const (
	defaultLimit  = 10
	defaultOffset = 0
)

// Service описывает интерфейс бизнес-логики выборки истории.
type Service interface {
	List(ctx context.Context, username string, filter query.Filter, limit, offset int) ([]*models.Operation, error)
}

// Handler обрабатывает запросы на выборку истории операций.
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
// @Summary История операций
// @Description Возвращает страницу записей вызывающего пользователя с необязательной фильтрацией по виду операции и интервалу дат.
// @Tags History
// @Produce  json
// @Param operation query string false "Вид операции (add, subtract, multiply, divide, sqrt)"
// @Param start_date query string false "Нижняя граница времени записи, RFC3339, включительно"
// @Param end_date query string false "Верхняя граница времени записи, RFC3339, включительно"
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Param offset query int false "Смещение страницы (по умолчанию 0)"
// @Success 200 {object} map[string]any "Страница записей"
// @Failure 401 {object} response.ErrorResponse "Невалидный токен"
// @Failure 422 {object} response.ErrorResponse "Некорректная дата фильтра"
// @Security Bearer
// @Router /history [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.history.list"

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

	filter, err := parseFilter(r)
	if err != nil {
		log.Error("failed to parse filter", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid date filter, expected RFC3339"))
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = defaultOffset
	}

	entries, err := h.service.List(r.Context(), username, filter, limit, offset)
	if err != nil {
		log.Error("failed to list operations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list operations"))
		return
	}

	log.Info("history page served", slog.Int("count", len(entries)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":      len(entries),
		"operations": entries,
	}))
}

// parseFilter собирает фильтр из необязательных параметров строки запроса.
func parseFilter(r *http.Request) (query.Filter, error) {
	var filter query.Filter

	if operation := r.URL.Query().Get("operation"); operation != "" {
		filter.Operation = &operation
	}
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return query.Filter{}, err
		}
		filter.StartDate = &t
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return query.Filter{}, err
		}
		filter.EndDate = &t
	}
	return filter, nil
}
