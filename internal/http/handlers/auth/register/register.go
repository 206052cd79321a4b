// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Обработчик декодирует JSON, проверяет форму полей и делегирует
// регистрацию сервису аутентификации. Пароль ни в ответ, ни в логи
// не попадает; повторный username или email — 409 Conflict.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ravenmx/calculator-service/internal/http/response"
	"github.com/ravenmx/calculator-service/internal/lib/sl"
	"github.com/ravenmx/calculator-service/internal/models"
)

// Request — входные данные для регистрации.
type Request struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=20"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email,max=40"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает учетную запись. Email проверяется внешним сервисом на формат, MX-записи и одноразовость.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} map[string]any "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Username или email заняты"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		status := response.StatusFor(err)
		w.WriteHeader(status)
		if status == http.StatusInternalServerError {
			render.JSON(w, r, response.Error("failed to register user"))
			return
		}
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("user registered", slog.String("username", user.Username))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username":   user.Username,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	}))
}
