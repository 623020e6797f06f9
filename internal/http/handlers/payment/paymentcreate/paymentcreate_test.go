package paymentcreate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lms-backend/internal/apperror"
	"github.com/magabrotheeeer/lms-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lms-backend/internal/models"
	"github.com/magabrotheeeer/lms-backend/internal/services/payment"
)

// MockService реализует интерфейс paymentcreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateCheckout(ctx context.Context, userUID, userEmail string, req models.DummyCheckout) (*payment.CheckoutResult, error) {
	args := m.Called(ctx, userUID, userEmail, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutResult), args.Error(1)
}

func TestPaymentCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		authorized     bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "успешное создание сессии",
			body:       `{"course":5,"success_url":"https://lms.example/ok","cancel_url":"https://lms.example/no"}`,
			authorized: true,
			setupMock: func(m *MockService) {
				m.On("CreateCheckout", mock.Anything, "uid-1", "user@example.com", mock.Anything).
					Return(&payment.CheckoutResult{
						PaymentID:   42,
						SessionID:   "cs_1",
						CheckoutURL: "https://pay.example/cs_1",
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"checkout_url":"https://pay.example/cs_1"`,
		},
		{
			name:       "курс и урок одновременно",
			body:       `{"course":5,"lesson":7}`,
			authorized: true,
			setupMock: func(m *MockService) {
				m.On("CreateCheckout", mock.Anything, "uid-1", "user@example.com", mock.Anything).
					Return(nil, apperror.NewFieldError("course", "exactly one of course or lesson is required"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `exactly one of course or lesson is required`,
		},
		{
			name:       "сбой провайдера",
			body:       `{"course":5}`,
			authorized: true,
			setupMock: func(m *MockService) {
				m.On("CreateCheckout", mock.Anything, "uid-1", "user@example.com", mock.Anything).
					Return(nil, apperror.ErrExternal)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `payment provider unavailable`,
		},
		{
			name:           "аноним",
			body:           `{"course":5}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/payments/create", strings.NewReader(tt.body))
			if tt.authorized {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
				ctx = context.WithValue(ctx, middlewarectx.Role, models.RoleUser)
				ctx = context.WithValue(ctx, middlewarectx.User, "user@example.com")
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
