// Package paymentcreate реализует HTTP-обработчик создания сессии оплаты.
//
// Handler принимает запрос на оплату курса или урока и возвращает ссылку
// на платёжную страницу внешнего провайдера.
package paymentcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lms-backend/internal/apperror"
	"github.com/magabrotheeeer/lms-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lms-backend/internal/http/response"
	"github.com/magabrotheeeer/lms-backend/internal/lib/sl"
	"github.com/magabrotheeeer/lms-backend/internal/models"
	"github.com/magabrotheeeer/lms-backend/internal/services/payment"
)

// Service описывает интерфейс бизнес-логики создания платежа.
type Service interface {
	CreateCheckout(ctx context.Context, userUID, userEmail string, req models.DummyCheckout) (*payment.CheckoutResult, error)
}

// Handler управляет HTTP-запросами на создание сессии оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать сессию оплаты
// @Description Создает платёж за курс или урок и возвращает ссылку на оплату.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyCheckout true "Данные платежа"
// @Success 201 {object} map[string]any "Сессия оплаты создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Курс или урок не найден"
// @Failure 502 {object} response.ErrorResponse "Сбой платёжного провайдера"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.paymentcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCheckout
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	requester, ok := middlewarectx.Requester(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	email, _ := r.Context().Value(middlewarectx.User).(string)

	result, err := h.service.CreateCheckout(r.Context(), requester.UID, email, req)
	if err != nil {
		var fieldErr *apperror.FieldError
		switch {
		case errors.As(err, &fieldErr):
			log.Error("invalid checkout request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(fieldErr.Error()))
		case errors.Is(err, apperror.ErrNotFound):
			log.Error("checkout target not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("course or lesson not found"))
		case errors.Is(err, apperror.ErrExternal):
			log.Error("payment provider failure", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider unavailable"))
		default:
			log.Error("failed to create checkout", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create checkout"))
		}
		return
	}

	log.Info("success to create checkout",
		slog.Int("payment_id", result.PaymentID),
		slog.String("session_id", result.SessionID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(result))
}
