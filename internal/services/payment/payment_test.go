package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lms-backend/internal/apperror"
	"github.com/magabrotheeeer/lms-backend/internal/models"
	"github.com/magabrotheeeer/lms-backend/internal/paymentprovider"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	args := m.Called(ctx, payment)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, filter models.PaymentFilter, limit, offset int) ([]*models.Payment, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockPaymentRepository) ReadLesson(ctx context.Context, id int) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateProduct(ctx context.Context, name, description string) (*paymentprovider.Product, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.Product), args.Error(1)
}

func (m *MockProvider) CreatePrice(ctx context.Context, productID string, unitAmount int64, currency string) (*paymentprovider.Price, error) {
	args := m.Called(ctx, productID, unitAmount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.Price), args.Error(1)
}

func (m *MockProvider) CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL, customerEmail string) (*paymentprovider.CheckoutSession, error) {
	args := m.Called(ctx, priceID, successURL, cancelURL, customerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CheckoutSession), args.Error(1)
}

func discardLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func ptrInt(v int) *int           { return &v }
func ptrFloat(v float64) *float64 { return &v }

func TestCreateCheckout(t *testing.T) {
	courseID := ptrInt(5)
	course := &models.Course{ID: 5, Title: "Go basics", Description: "intro", Price: ptrFloat(199.0)}

	t.Run("успешная оплата курса по его цене", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		provider := new(MockProvider)
		repo.On("ReadCourse", mock.Anything, 5).Return(course, nil)
		provider.On("CreateProduct", mock.Anything, "Go basics", "intro").
			Return(&paymentprovider.Product{ID: "prod_1"}, nil)
		provider.On("CreatePrice", mock.Anything, "prod_1", int64(19900), "usd").
			Return(&paymentprovider.Price{ID: "price_1"}, nil)
		provider.On("CreateCheckoutSession", mock.Anything, "price_1",
			"https://lms.example/ok", "https://lms.example/cancel", "user@example.com").
			Return(&paymentprovider.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil)
		repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
			return p.Method == models.MethodStripe &&
				p.Status == models.PaymentStatusPending &&
				p.StripeSessionID == "cs_1" &&
				p.Amount == 199.0
		})).Return(42, nil)

		svc := NewPaymentService(repo, provider, discardLogger())
		result, err := svc.CreateCheckout(context.Background(), "uid-1", "user@example.com", models.DummyCheckout{
			CourseID:   courseID,
			SuccessURL: "https://lms.example/ok",
			CancelURL:  "https://lms.example/cancel",
		})
		require.NoError(t, err)
		assert.Equal(t, 42, result.PaymentID)
		assert.Equal(t, "https://pay.example/cs_1", result.CheckoutURL)
		repo.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("сумма из запроса важнее цены курса", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		provider := new(MockProvider)
		repo.On("ReadCourse", mock.Anything, 5).Return(course, nil)
		provider.On("CreateProduct", mock.Anything, "Go basics", "intro").
			Return(&paymentprovider.Product{ID: "prod_1"}, nil)
		provider.On("CreatePrice", mock.Anything, "prod_1", int64(5000), "eur").
			Return(&paymentprovider.Price{ID: "price_1"}, nil)
		provider.On("CreateCheckoutSession", mock.Anything, "price_1",
			"http://localhost:8000/success", "http://localhost:8000/cancel", "").
			Return(&paymentprovider.CheckoutSession{ID: "cs_1", URL: "u"}, nil)
		repo.On("CreatePayment", mock.Anything, mock.Anything).Return(1, nil)

		svc := NewPaymentService(repo, provider, discardLogger())
		_, err := svc.CreateCheckout(context.Background(), "uid-1", "", models.DummyCheckout{
			CourseID: courseID,
			Amount:   ptrFloat(50.0),
			Currency: "eur",
		})
		require.NoError(t, err)
		provider.AssertExpectations(t)
	})

	t.Run("дробная часть суммы отбрасывается", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		provider := new(MockProvider)
		repo.On("ReadCourse", mock.Anything, 5).Return(course, nil)
		provider.On("CreateProduct", mock.Anything, "Go basics", "intro").
			Return(&paymentprovider.Product{ID: "prod_1"}, nil)
		provider.On("CreatePrice", mock.Anything, "prod_1", int64(1099), "usd").
			Return(&paymentprovider.Price{ID: "price_1"}, nil)
		provider.On("CreateCheckoutSession", mock.Anything, "price_1",
			"http://localhost:8000/success", "http://localhost:8000/cancel", "").
			Return(&paymentprovider.CheckoutSession{ID: "cs_1", URL: "u"}, nil)
		repo.On("CreatePayment", mock.Anything, mock.Anything).Return(1, nil)

		svc := NewPaymentService(repo, provider, discardLogger())
		_, err := svc.CreateCheckout(context.Background(), "uid-1", "", models.DummyCheckout{
			CourseID: courseID,
			Amount:   ptrFloat(10.999),
		})
		require.NoError(t, err)
		provider.AssertExpectations(t)
	})

	t.Run("нужно указать курс или урок, но не оба", func(t *testing.T) {
		svc := NewPaymentService(new(MockPaymentRepository), new(MockProvider), discardLogger())

		_, err := svc.CreateCheckout(context.Background(), "uid-1", "", models.DummyCheckout{})
		require.ErrorIs(t, err, apperror.ErrValidation)

		_, err = svc.CreateCheckout(context.Background(), "uid-1", "", models.DummyCheckout{
			CourseID: ptrInt(1), LessonID: ptrInt(2),
		})
		require.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("без суммы и без цены объекта", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		repo.On("ReadLesson", mock.Anything, 7).
			Return(&models.Lesson{ID: 7, Title: "Intro"}, nil)
		svc := NewPaymentService(repo, new(MockProvider), discardLogger())

		_, err := svc.CreateCheckout(context.Background(), "uid-1", "", models.DummyCheckout{
			LessonID: ptrInt(7),
		})
		require.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("несуществующий курс", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		repo.On("ReadCourse", mock.Anything, 99).Return(nil, apperror.ErrNotFound)
		svc := NewPaymentService(repo, new(MockProvider), discardLogger())

		_, err := svc.CreateCheckout(context.Background(), "uid-1", "", models.DummyCheckout{
			CourseID: ptrInt(99),
		})
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("сбой провайдера на шаге цены не сохраняет платёж", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		provider := new(MockProvider)
		repo.On("ReadCourse", mock.Anything, 5).Return(course, nil)
		provider.On("CreateProduct", mock.Anything, "Go basics", "intro").
			Return(&paymentprovider.Product{ID: "prod_1"}, nil)
		provider.On("CreatePrice", mock.Anything, "prod_1", int64(19900), "usd").
			Return(nil, errors.New("rate limited"))

		svc := NewPaymentService(repo, provider, discardLogger())
		_, err := svc.CreateCheckout(context.Background(), "uid-1", "", models.DummyCheckout{
			CourseID: courseID,
		})
		require.ErrorIs(t, err, apperror.ErrExternal)
		repo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
		provider.AssertNotCalled(t, "CreateCheckoutSession",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestList(t *testing.T) {
	repo := new(MockPaymentRepository)
	filter := models.PaymentFilter{CourseID: ptrInt(5), Method: models.MethodStripe}
	payments := []*models.Payment{{ID: 1, Method: models.MethodStripe}}
	repo.On("ListPayments", mock.Anything, filter, 10, 0).Return(payments, nil)
	svc := NewPaymentService(repo, new(MockProvider), discardLogger())

	result, err := svc.List(context.Background(), filter, 10, 0)
	require.NoError(t, err)
	assert.Len(t, result, 1)
}
