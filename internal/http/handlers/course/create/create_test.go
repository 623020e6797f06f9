package create

import (
	"context"
	"errors"
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
	"github.com/magabrotheeeer/lms-backend/internal/services/authz"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, requester authz.Requester, req models.DummyCourse) (int, error) {
	args := m.Called(ctx, requester, req)
	return args.Int(0), args.Error(1)
}

func withUser(req *http.Request, uid, role string) *http.Request {
	ctx := context.WithValue(req.Context(), middlewarectx.UserUID, uid)
	ctx = context.WithValue(ctx, middlewarectx.Role, role)
	return req.WithContext(ctx)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		uid            string
		role           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание",
			body: `{"title":"Go basics","description":"intro"}`,
			uid:  "uid-1",
			role: models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything,
					authz.Requester{UID: "uid-1", Role: models.RoleUser},
					mock.Anything).Return(7, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":7`,
		},
		{
			name:           "некорректный json",
			body:           `{not json`,
			uid:            "uid-1",
			role:           models.RoleUser,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "пустой title не проходит валидацию",
			body:           `{"description":"intro"}`,
			uid:            "uid-1",
			role:           models.RoleUser,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `required field`,
		},
		{
			name:           "аноним",
			body:           `{"title":"Go basics"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
		{
			name: "модератору запрещено",
			body: `{"title":"Go basics"}`,
			uid:  "uid-2",
			role: models.RoleModerator,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything,
					authz.Requester{UID: "uid-2", Role: models.RoleModerator},
					mock.Anything).Return(0, apperror.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `forbidden`,
		},
		{
			name: "ошибка сервиса",
			body: `{"title":"Go basics"}`,
			uid:  "uid-1",
			role: models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create course`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(tt.body))
			if tt.uid != "" {
				req = withUser(req, tt.uid, tt.role)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
