// Package delegated реализует HTTP-обработчик делегированного минта:
// подписант берется из справочника администраторов, газ оплачивает
// отдельный fee payer сервиса.
package delegated

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/enftlab/enft-backend/internal/http/middlewarectx"
	"github.com/enftlab/enft-backend/internal/http/response"
	"github.com/enftlab/enft-backend/internal/lib/sl"
	"github.com/enftlab/enft-backend/internal/services/mint"
	"github.com/enftlab/enft-backend/internal/storage/repository"
)

// Request — структура входных данных для делегированного минта.
type Request struct {
	Target         string `json:"target" validate:"required,eth_addr"`
	Place          string `json:"place" validate:"required"`
	Day            int    `json:"day" validate:"required,gt=0"`
	RecipientEmail string `json:"recipient_email" validate:"omitempty,email"`
}

// Handler обрабатывает HTTP-запросы делегированного минта.
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
// @Summary Делегированный минт допуска
// @Description Выпускает admission-NFT от имени администратора, газ оплачивает fee payer сервиса.
// @Tags Mint
// @Accept  json
// @Produce  json
// @Param request body Request true "Параметры минта"
// @Success 200 {object} map[string]any "Квитанция транзакции"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Администратор не аутентифицирован"
// @Failure 404 {object} response.ErrorResponse "Администратор не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка отправки транзакции"
// @Security BearerAuth
// @Router /mint/delegated [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.mint.delegated"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.Email).(string)
	if !ok || email == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded",
		slog.String("target", req.Target), slog.String("place", req.Place))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	receipt, err := h.service.MintDelegated(r.Context(), email, req.Place, mint.Request{
		Target:         req.Target,
		Day:            req.Day,
		RecipientEmail: req.RecipientEmail,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("admin not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("admin not found"))
			return
		}
		log.Error("mint failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to mint"))
		return
	}

	log.Info("minted", slog.String("tx_hash", receipt.TxHash))
	render.JSON(w, r, response.OKWithData(receipt))
}
