// Package calculate реализует HTTP-обработчик выполнения арифметической операции.
//
// Тело запроса декодируется в доменный запрос операции; доменную валидацию
// (вид операции, диапазоны операндов, деление на ноль, отрицательный корень)
// выполняет бизнес-логика, обработчик отвечает только за транспорт.
package calculate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ravenmx/calculator-service/internal/http/middlewarectx"
	"github.com/ravenmx/calculator-service/internal/http/response"
	"github.com/ravenmx/calculator-service/internal/lib/sl"
	"github.com/ravenmx/calculator-service/internal/models"
)

// Service описывает интерфейс бизнес-логики выполнения операции.
type Service interface {
	Execute(ctx context.Context, username string, req *models.OperationRequest) (*models.Operation, error)
}

// Handler обрабатывает запросы на вычисление.
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
// @Summary Выполнить вычисление
// @Description Проверяет и выполняет операцию (add, subtract, multiply, divide, sqrt), сохраняет запись результата.
// @Tags Calculator
// @Accept  json
// @Produce  json
// @Param request body models.OperationRequest true "Операция и операнды"
// @Success 200 {object} map[string]any "Сохранённая запись с результатом"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Невалидный токен"
// @Failure 422 {object} response.ErrorResponse "Нарушение правил операции"
// @Security Bearer
// @Router /calculate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.operation.calculate"

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

	var req models.OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("operation", req.Operation))

	record, err := h.service.Execute(r.Context(), username, &req)
	if err != nil {
		log.Error("failed to execute operation", sl.Err(err))
		status := response.StatusFor(err)
		w.WriteHeader(status)
		if status == http.StatusInternalServerError {
			render.JSON(w, r, response.Error("failed to execute operation"))
			return
		}
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("operation executed",
		slog.Int64("id", record.ID),
		slog.String("result", record.Result.String()))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"operation": record,
	}))
}
