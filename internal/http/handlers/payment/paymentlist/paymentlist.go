// Package paymentlist реализует HTTP-обработчик списка платежей.
//
// Список фильтруется по курсу, уроку и способу оплаты через query-параметры.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lms-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lms-backend/internal/http/response"
	"github.com/magabrotheeeer/lms-backend/internal/lib/sl"
	"github.com/magabrotheeeer/lms-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики списка платежей.
type Service interface {
	List(ctx context.Context, filter models.PaymentFilter, limit, offset int) ([]*models.Payment, error)
}

// Handler управляет HTTP-запросами на получение списка платежей.
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
// @Summary Получить список платежей
// @Description Возвращает платежи с фильтрацией по курсу, уроку и способу оплаты.
// @Tags Payments
// @Produce  json
// @Security BearerAuth
// @Param course query int false "Фильтр по ID курса"
// @Param lesson query int false "Фильтр по ID урока"
// @Param method query string false "Фильтр по способу оплаты (cash, transfer, stripe)"
// @Param limit query int false "Максимум записей" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список платежей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.paymentlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if _, ok := middlewarectx.Requester(r.Context()); !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var filter models.PaymentFilter
	if v, err := strconv.Atoi(r.URL.Query().Get("course")); err == nil {
		filter.CourseID = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("lesson")); err == nil {
		filter.LessonID = &v
	}
	filter.Method = r.URL.Query().Get("method")

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	payments, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}

	log.Info("success to list payments", slog.Int("count", len(payments)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payments": payments,
		"count":    len(payments),
	}))
}
