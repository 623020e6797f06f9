// Package course содержит бизнес-логику для управления курсами.
//
// Видимость списка курсов зависит от роли: модератор видит все курсы,
// остальные — только свои. Создавать и удалять курсы модератор не может.
// Обновление курса доступно любому аутентифицированному пользователю;
// владелец при обновлении намеренно не проверяется.
package course

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/lms-backend/internal/apperror"
	"github.com/magabrotheeeer/lms-backend/internal/models"
	"github.com/magabrotheeeer/lms-backend/internal/services/authz"
)

// notifyWindow — минимальный интервал между обновлением курса
// и предыдущим, после которого подписчикам уходит рассылка.
const notifyWindow = 4 * time.Hour

// CourseRepository определяет методы для работы с курсами в хранилище.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course models.Course) (int, error)
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
	UpdateCourse(ctx context.Context, req models.DummyCourse, id int) (int, error)
	RemoveCourse(ctx context.Context, id int) (int, error)
	ListCoursesByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Course, error)
	ListAllCourses(ctx context.Context, limit, offset int) ([]*models.Course, error)
	ListLessonsByCourse(ctx context.Context, courseID int) ([]*models.Lesson, error)
	ExistsSubscription(ctx context.Context, userUID string, courseID int) (bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Notifier запускает рассылку уведомления об обновлении курса.
// Вызов не блокирует и не возвращает ошибку: сбой канала уведомлений
// не должен влиять на ответ на запрос обновления.
type Notifier interface {
	NotifyCourseUpdated(courseID int)
}

// CourseService реализует бизнес-логику работы с курсами, включая кеширование
// и отложенную рассылку уведомлений подписчикам.
type CourseService struct {
	repo     CourseRepository
	cache    Cache
	notifier Notifier
	log      *slog.Logger
}

// NewCourseService создает новый экземпляр CourseService.
func NewCourseService(repo CourseRepository, cache Cache, notifier Notifier, log *slog.Logger) *CourseService {
	return &CourseService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// Create создает курс, владельцем становится запрашивающий.
// Модераторам создание курсов запрещено.
func (s *CourseService) Create(ctx context.Context, requester authz.Requester, req models.DummyCourse) (int, error) {
	if !authz.CanCreateCourse(requester) {
		return 0, apperror.ErrForbidden
	}

	course := models.Course{
		OwnerUID:    requester.UID,
		Title:       req.Title,
		Description: req.Description,
		PreviewURL:  req.PreviewURL,
		Price:       req.Price,
	}
	id, err := s.repo.CreateCourse(ctx, course)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new course", slog.Int("id", id))
	return id, nil
}

// List возвращает список курсов в зависимости от роли пользователя.
func (s *CourseService) List(ctx context.Context, requester authz.Requester, limit, offset int) ([]*models.Course, error) {
	if authz.SeesAllCourses(requester) {
		return s.repo.ListAllCourses(ctx, limit, offset)
	}
	return s.repo.ListCoursesByOwner(ctx, requester.UID, limit, offset)
}

// Read возвращает курс с уроками и признаком подписки запрашивающего.
// Для анонимного запроса is_subscribed всегда false без обращения к хранилищу.
func (s *CourseService) Read(ctx context.Context, requester authz.Requester, id int) (*models.CourseDetail, error) {
	course, err := s.readCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	lessons, err := s.repo.ListLessonsByCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	var isSubscribed bool
	if requester.IsAuthenticated() {
		isSubscribed, err = s.repo.ExistsSubscription(ctx, requester.UID, id)
		if err != nil {
			return nil, err
		}
	}

	return &models.CourseDetail{
		Course:       *course,
		Lessons:      lessons,
		LessonsCount: len(lessons),
		IsSubscribed: isSubscribed,
	}, nil
}

// readCourse возвращает курс из кеша или хранилища.
func (s *CourseService) readCourse(ctx context.Context, id int) (*models.Course, error) {
	var result *models.Course
	cacheKey := fmt.Sprintf("course:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}

	result, err = s.repo.ReadCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache course", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет курс. Если с предыдущего обновления прошло больше
// четырёх часов или курс ещё не обновлялся, подписчикам уходит рассылка;
// её отправка не блокирует ответ и не может его провалить.
func (s *CourseService) Update(ctx context.Context, requester authz.Requester, req models.DummyCourse, id int) (int, error) {
	if !authz.CanUpdateCourse(requester) {
		return 0, apperror.ErrForbidden
	}

	course, err := s.repo.ReadCourse(ctx, id)
	if err != nil {
		return 0, err
	}

	res, err := s.repo.UpdateCourse(ctx, req, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated course in storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("course:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	if course.UpdatedAt == nil || time.Since(*course.UpdatedAt) > notifyWindow {
		s.notifier.NotifyCourseUpdated(id)
		s.log.Info("scheduled course update notification", slog.Int("course_id", id))
	}
	return res, nil
}

// Remove удаляет курс. Модераторам удаление запрещено.
func (s *CourseService) Remove(ctx context.Context, requester authz.Requester, id int) (int, error) {
	if !authz.CanDestroyCourse(requester) {
		return 0, apperror.ErrForbidden
	}

	count, err := s.repo.RemoveCourse(ctx, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, apperror.ErrNotFound
	}

	cacheKey := fmt.Sprintf("course:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}
