// Package scheduler содержит периодическую деактивацию пользователей,
// не заходивших на платформу больше месяца.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/lms-backend/internal/lib/sl"
)

// inactivityPeriod — срок без входа, после которого аккаунт деактивируется.
const inactivityPeriod = 30 * 24 * time.Hour

// UserRepository определяет методы деактивации неактивных пользователей.
type UserRepository interface {
	DeactivateInactiveUsers(ctx context.Context, cutoff time.Time) (int, error)
}

// SchedulerService периодически деактивирует давно не заходивших пользователей.
type SchedulerService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo UserRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// DeactivateInactiveUsers запускает деактивацию сразу и затем раз в сутки,
// пока контекст не отменён.
func (s *SchedulerService) DeactivateInactiveUsers(ctx context.Context) {
	s.runDeactivateInactiveUsers(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runDeactivateInactiveUsers(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runDeactivateInactiveUsers(ctx context.Context) {
	s.log.Info("starting service to deactivate inactive users")
	cutoff := time.Now().Add(-inactivityPeriod)
	count, err := s.repo.DeactivateInactiveUsers(ctx, cutoff)
	if err != nil {
		s.log.Error("failed to deactivate inactive users", sl.Err(err))
		return
	}
	if count == 0 {
		s.log.Info("no inactive users found")
		return
	}
	s.log.Info("deactivated inactive users", "count", count)
}
