// Package lesson содержит бизнес-логику для управления уроками.
//
// Уроки редактируются владельцем или модератором, но удалить урок
// модератор не может даже будучи его владельцем.
package lesson

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/lms-backend/internal/apperror"
	"github.com/magabrotheeeer/lms-backend/internal/lib/videourl"
	"github.com/magabrotheeeer/lms-backend/internal/models"
	"github.com/magabrotheeeer/lms-backend/internal/services/authz"
)

// LessonRepository определяет методы для работы с уроками в хранилище.
type LessonRepository interface {
	CreateLesson(ctx context.Context, lesson models.Lesson) (int, error)
	ReadLesson(ctx context.Context, id int) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, req models.DummyLesson, id int) (int, error)
	RemoveLesson(ctx context.Context, id int) (int, error)
	ListLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error)
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
}

// LessonService реализует бизнес-логику работы с уроками.
type LessonService struct {
	repo LessonRepository
	log  *slog.Logger
}

// NewLessonService создает новый экземпляр LessonService.
func NewLessonService(repo LessonRepository, log *slog.Logger) *LessonService {
	return &LessonService{repo: repo, log: log}
}

// Create создает урок в существующем курсе, владельцем становится запрашивающий.
// Ссылка на видео допускается только на youtube.
func (s *LessonService) Create(ctx context.Context, requester authz.Requester, req models.DummyLesson) (int, error) {
	if !requester.IsAuthenticated() {
		return 0, apperror.ErrForbidden
	}
	if err := videourl.Validate(req.VideoURL); err != nil {
		return 0, err
	}
	if _, err := s.repo.ReadCourse(ctx, req.CourseID); err != nil {
		return 0, err
	}

	lesson := models.Lesson{
		OwnerUID:    requester.UID,
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		PreviewURL:  req.PreviewURL,
		VideoURL:    req.VideoURL,
		Price:       req.Price,
	}
	id, err := s.repo.CreateLesson(ctx, lesson)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new lesson", slog.Int("id", id), slog.Int("course_id", req.CourseID))
	return id, nil
}

// List возвращает список уроков с пагинацией.
func (s *LessonService) List(ctx context.Context, limit, offset int) ([]*models.Lesson, error) {
	return s.repo.ListLessons(ctx, limit, offset)
}

// Read возвращает урок по идентификатору. Доступен владельцу и модератору,
// остальным запрещён так же, как изменение.
func (s *LessonService) Read(ctx context.Context, requester authz.Requester, id int) (*models.Lesson, error) {
	lesson, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutateLesson(requester, lesson) {
		return nil, apperror.ErrForbidden
	}
	return lesson, nil
}

// Update обновляет урок. Разрешено владельцу и модератору.
func (s *LessonService) Update(ctx context.Context, requester authz.Requester, req models.DummyLesson, id int) (int, error) {
	lesson, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		return 0, err
	}
	if !authz.CanMutateLesson(requester, lesson) {
		return 0, apperror.ErrForbidden
	}
	if err := videourl.Validate(req.VideoURL); err != nil {
		return 0, err
	}

	res, err := s.repo.UpdateLesson(ctx, req, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated lesson in storage", slog.Int("id", id))
	return res, nil
}

// Remove удаляет урок. Разрешено только владельцу, модератор
// не может удалять даже собственные уроки.
func (s *LessonService) Remove(ctx context.Context, requester authz.Requester, id int) (int, error) {
	lesson, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		return 0, err
	}
	if !authz.CanDeleteLesson(requester, lesson) {
		return 0, apperror.ErrForbidden
	}

	count, err := s.repo.RemoveLesson(ctx, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("removed lesson from storage", slog.Int("id", id))
	return count, nil
}
