// Package subscription содержит бизнес-логику подписок на курсы.
package subscription

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/lms-backend/internal/apperror"
	"github.com/magabrotheeeer/lms-backend/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, userUID string, courseID int) (int, error)
	RemoveSubscription(ctx context.Context, userUID string, courseID int) (int, error)
	ExistsSubscription(ctx context.Context, userUID string, courseID int) (bool, error)
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
}

// SubscriptionService реализует бизнес-логику подписок.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, log: log}
}

// Toggle переключает подписку пользователя на курс: создает, если её нет,
// и удаляет существующую. Возвращает итоговое состояние подписки.
// Гонку двух одновременных подписок разрешает уникальный индекс в базе:
// проигравшая вставка сходится к состоянию "подписан".
func (s *SubscriptionService) Toggle(ctx context.Context, userUID string, courseID int) (bool, error) {
	if _, err := s.repo.ReadCourse(ctx, courseID); err != nil {
		return false, err
	}

	exists, err := s.repo.ExistsSubscription(ctx, userUID, courseID)
	if err != nil {
		return false, err
	}
	if exists {
		if _, err := s.repo.RemoveSubscription(ctx, userUID, courseID); err != nil {
			return false, err
		}
		s.log.Info("subscription removed",
			slog.String("user_uid", userUID), slog.Int("course_id", courseID))
		return false, nil
	}

	if _, err := s.repo.CreateSubscription(ctx, userUID, courseID); err != nil {
		if errors.Is(err, apperror.ErrDuplicate) {
			return true, nil
		}
		return false, err
	}
	s.log.Info("subscription created",
		slog.String("user_uid", userUID), slog.Int("course_id", courseID))
	return true, nil
}

// Unsubscribe снимает подписку пользователя с курса.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userUID string, courseID int) error {
	count, err := s.repo.RemoveSubscription(ctx, userUID, courseID)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperror.ErrNotFound
	}
	s.log.Info("subscription removed",
		slog.String("user_uid", userUID), slog.Int("course_id", courseID))
	return nil
}

// IsSubscribed сообщает, подписан ли пользователь на курс.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, userUID string, courseID int) (bool, error) {
	return s.repo.ExistsSubscription(ctx, userUID, courseID)
}
