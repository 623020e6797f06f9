// Package payment содержит бизнес-логику платежей: создание сессии оплаты
// во внешнем платёжном сервисе и учёт платежей в хранилище.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/lms-backend/internal/apperror"
	"github.com/magabrotheeeer/lms-backend/internal/models"
	"github.com/magabrotheeeer/lms-backend/internal/paymentprovider"
)

// Значения по умолчанию для запроса на создание сессии.
const (
	defaultCurrency   = "usd"
	defaultSuccessURL = "http://localhost:8000/success"
	defaultCancelURL  = "http://localhost:8000/cancel"
)

// PaymentRepository определяет методы для работы с платежами в хранилище.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment models.Payment) (int, error)
	ListPayments(ctx context.Context, filter models.PaymentFilter, limit, offset int) ([]*models.Payment, error)
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
	ReadLesson(ctx context.Context, id int) (*models.Lesson, error)
}

// Provider описывает три шага создания сессии оплаты во внешнем сервисе.
type Provider interface {
	CreateProduct(ctx context.Context, name, description string) (*paymentprovider.Product, error)
	CreatePrice(ctx context.Context, productID string, unitAmount int64, currency string) (*paymentprovider.Price, error)
	CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL, customerEmail string) (*paymentprovider.CheckoutSession, error)
}

// CheckoutResult — результат создания сессии оплаты.
type CheckoutResult struct {
	PaymentID   int    `json:"payment_id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// PaymentService реализует бизнес-логику платежей.
type PaymentService struct {
	repo     PaymentRepository
	provider Provider
	log      *slog.Logger
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(repo PaymentRepository, provider Provider, log *slog.Logger) *PaymentService {
	return &PaymentService{repo: repo, provider: provider, log: log}
}

// CreateCheckout создаёт сессию оплаты курса или урока. Во внешнем сервисе
// последовательно создаются продукт, цена и сессия; при сбое любого шага
// платёж не сохраняется. Запись о платеже появляется в хранилище только
// после успешного создания сессии.
func (s *PaymentService) CreateCheckout(ctx context.Context, userUID, userEmail string, req models.DummyCheckout) (*CheckoutResult, error) {
	const op = "services.payment.CreateCheckout"

	if (req.CourseID == nil) == (req.LessonID == nil) {
		return nil, apperror.NewFieldError("course", "exactly one of course or lesson is required")
	}

	name, description, price, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	amount := req.Amount
	if amount == nil {
		amount = price
	}
	if amount == nil || *amount <= 0 {
		return nil, apperror.NewFieldError("amount", "amount is required for items without a price")
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	successURL := req.SuccessURL
	if successURL == "" {
		successURL = defaultSuccessURL
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = defaultCancelURL
	}
	// Перевод в минорные единицы с отбрасыванием дробной части.
	unitAmount := int64(*amount * 100)

	product, err := s.provider.CreateProduct(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, apperror.ErrExternal, err)
	}
	priceObj, err := s.provider.CreatePrice(ctx, product.ID, unitAmount, currency)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, apperror.ErrExternal, err)
	}
	session, err := s.provider.CreateCheckoutSession(ctx, priceObj.ID, successURL, cancelURL, userEmail)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, apperror.ErrExternal, err)
	}

	payment := models.Payment{
		UserUID:         userUID,
		CourseID:        req.CourseID,
		LessonID:        req.LessonID,
		Amount:          *amount,
		Method:          models.MethodStripe,
		StripeProductID: product.ID,
		StripePriceID:   priceObj.ID,
		StripeSessionID: session.ID,
		CheckoutURL:     session.URL,
		Status:          models.PaymentStatusPending,
	}
	paymentID, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	s.log.Info("created checkout session",
		slog.Int("payment_id", paymentID),
		slog.String("session_id", session.ID))
	return &CheckoutResult{
		PaymentID:   paymentID,
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

// resolveTarget находит оплачиваемый курс или урок и возвращает его
// название, описание и цену.
func (s *PaymentService) resolveTarget(ctx context.Context, req models.DummyCheckout) (string, string, *float64, error) {
	if req.CourseID != nil {
		course, err := s.repo.ReadCourse(ctx, *req.CourseID)
		if err != nil {
			return "", "", nil, err
		}
		return course.Title, course.Description, course.Price, nil
	}

	lesson, err := s.repo.ReadLesson(ctx, *req.LessonID)
	if err != nil {
		return "", "", nil, err
	}
	return lesson.Title, lesson.Description, lesson.Price, nil
}

// List возвращает платежи пользователя с фильтрацией по курсу, уроку
// и способу оплаты.
func (s *PaymentService) List(ctx context.Context, filter models.PaymentFilter, limit, offset int) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, filter, limit, offset)
}
