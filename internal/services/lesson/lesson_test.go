package lesson

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
	"github.com/magabrotheeeer/lms-backend/internal/services/authz"
)

type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) CreateLesson(ctx context.Context, lesson models.Lesson) (int, error) {
	args := m.Called(ctx, lesson)
	return args.Int(0), args.Error(1)
}

func (m *MockLessonRepository) ReadLesson(ctx context.Context, id int) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) UpdateLesson(ctx context.Context, req models.DummyLesson, id int) (int, error) {
	args := m.Called(ctx, req, id)
	return args.Int(0), args.Error(1)
}

func (m *MockLessonRepository) RemoveLesson(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockLessonRepository) ListLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func discardLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreate(t *testing.T) {
	owner := authz.Requester{UID: "uid-1", Role: models.RoleUser}

	t.Run("успешное создание", func(t *testing.T) {
		repo := new(MockLessonRepository)
		repo.On("ReadCourse", mock.Anything, 3).Return(&models.Course{ID: 3}, nil)
		repo.On("CreateLesson", mock.Anything, mock.MatchedBy(func(l models.Lesson) bool {
			return l.OwnerUID == "uid-1" && l.CourseID == 3
		})).Return(11, nil)
		svc := NewLessonService(repo, discardLogger())

		id, err := svc.Create(context.Background(), owner, models.DummyLesson{
			CourseID: 3,
			Title:    "Intro",
			VideoURL: "https://www.youtube.com/watch?v=abc",
		})
		require.NoError(t, err)
		assert.Equal(t, 11, id)
		repo.AssertExpectations(t)
	})

	t.Run("ссылка на сторонний ресурс отклоняется", func(t *testing.T) {
		repo := new(MockLessonRepository)
		svc := NewLessonService(repo, discardLogger())

		_, err := svc.Create(context.Background(), owner, models.DummyLesson{
			CourseID: 3,
			Title:    "Intro",
			VideoURL: "https://vimeo.com/12345",
		})
		require.ErrorIs(t, err, apperror.ErrValidation)
		repo.AssertNotCalled(t, "CreateLesson", mock.Anything, mock.Anything)
	})

	t.Run("несуществующий курс", func(t *testing.T) {
		repo := new(MockLessonRepository)
		repo.On("ReadCourse", mock.Anything, 99).Return(nil, apperror.ErrNotFound)
		svc := NewLessonService(repo, discardLogger())

		_, err := svc.Create(context.Background(), owner, models.DummyLesson{
			CourseID: 99,
			Title:    "Intro",
		})
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("аноним не может создать урок", func(t *testing.T) {
		svc := NewLessonService(new(MockLessonRepository), discardLogger())
		_, err := svc.Create(context.Background(), authz.Requester{}, models.DummyLesson{CourseID: 3})
		require.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestRead(t *testing.T) {
	lesson := &models.Lesson{ID: 11, OwnerUID: "uid-1", CourseID: 3, Title: "Intro"}

	tests := []struct {
		name      string
		requester authz.Requester
		wantErr   error
	}{
		{
			name:      "владелец читает свой урок",
			requester: authz.Requester{UID: "uid-1", Role: models.RoleUser},
		},
		{
			name:      "модератор читает чужой урок",
			requester: authz.Requester{UID: "uid-2", Role: models.RoleModerator},
		},
		{
			name:      "посторонний пользователь не может прочитать урок",
			requester: authz.Requester{UID: "uid-3", Role: models.RoleUser},
			wantErr:   apperror.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLessonRepository)
			repo.On("ReadLesson", mock.Anything, 11).Return(lesson, nil)
			svc := NewLessonService(repo, discardLogger())

			got, err := svc.Read(context.Background(), tt.requester, 11)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, lesson, got)
			}
		})
	}

	t.Run("несуществующий урок", func(t *testing.T) {
		repo := new(MockLessonRepository)
		repo.On("ReadLesson", mock.Anything, 99).Return(nil, apperror.ErrNotFound)
		svc := NewLessonService(repo, discardLogger())

		_, err := svc.Read(context.Background(), authz.Requester{UID: "uid-1", Role: models.RoleUser}, 99)
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestUpdate(t *testing.T) {
	lesson := &models.Lesson{ID: 11, OwnerUID: "uid-1", CourseID: 3}

	tests := []struct {
		name      string
		requester authz.Requester
		wantErr   error
	}{
		{
			name:      "владелец обновляет урок",
			requester: authz.Requester{UID: "uid-1", Role: models.RoleUser},
		},
		{
			name:      "модератор обновляет чужой урок",
			requester: authz.Requester{UID: "uid-2", Role: models.RoleModerator},
		},
		{
			name:      "посторонний пользователь не может обновить урок",
			requester: authz.Requester{UID: "uid-3", Role: models.RoleUser},
			wantErr:   apperror.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLessonRepository)
			req := models.DummyLesson{CourseID: 3, Title: "new title"}
			repo.On("ReadLesson", mock.Anything, 11).Return(lesson, nil)
			if tt.wantErr == nil {
				repo.On("UpdateLesson", mock.Anything, req, 11).Return(1, nil)
			}
			svc := NewLessonService(repo, discardLogger())

			res, err := svc.Update(context.Background(), tt.requester, req, 11)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateLesson", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, res)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	t.Run("владелец удаляет урок", func(t *testing.T) {
		repo := new(MockLessonRepository)
		repo.On("ReadLesson", mock.Anything, 11).
			Return(&models.Lesson{ID: 11, OwnerUID: "uid-1"}, nil)
		repo.On("RemoveLesson", mock.Anything, 11).Return(1, nil)
		svc := NewLessonService(repo, discardLogger())

		count, err := svc.Remove(context.Background(), authz.Requester{UID: "uid-1", Role: models.RoleUser}, 11)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("модератор не может удалить даже собственный урок", func(t *testing.T) {
		repo := new(MockLessonRepository)
		repo.On("ReadLesson", mock.Anything, 11).
			Return(&models.Lesson{ID: 11, OwnerUID: "uid-2"}, nil)
		svc := NewLessonService(repo, discardLogger())

		_, err := svc.Remove(context.Background(), authz.Requester{UID: "uid-2", Role: models.RoleModerator}, 11)
		require.ErrorIs(t, err, apperror.ErrForbidden)
		repo.AssertNotCalled(t, "RemoveLesson", mock.Anything, mock.Anything)
	})

	t.Run("ошибка хранилища пробрасывается", func(t *testing.T) {
		repo := new(MockLessonRepository)
		repo.On("ReadLesson", mock.Anything, 11).Return(nil, errors.New("connection lost"))
		svc := NewLessonService(repo, discardLogger())

		_, err := svc.Remove(context.Background(), authz.Requester{UID: "uid-1", Role: models.RoleUser}, 11)
		require.Error(t, err)
	})
}
