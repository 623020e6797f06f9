package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/lms-backend/internal/models"
)

// CreateSubscription вставляет подписку пользователя на курс и возвращает её ID.
// Ограничение уникальности (user_uid, course_id) живёт в базе; его нарушение
// возвращается как apperror.ErrDuplicate.
func (s *Storage) CreateSubscription(ctx context.Context, userUID string, courseID int) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, course_id)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, userUID, courseID).Scan(&newID)
	if err != nil {
		return 0, wrapRowError(op, err)
	}
	return newID, nil
}

// RemoveSubscription удаляет подписку пары (пользователь, курс)
// и возвращает количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, userUID string, courseID int) (int, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE user_uid = $1 AND course_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, courseID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ExistsSubscription проверяет наличие подписки пары (пользователь, курс).
func (s *Storage) ExistsSubscription(ctx context.Context, userUID string, courseID int) (bool, error) {
	const op = "storage.ExistsSubscription"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
				  SELECT 1 FROM subscriptions WHERE user_uid = $1 AND course_id = $2
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userUID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListSubscriberInfo возвращает адреса всех подписчиков курса вместе с его названием.
func (s *Storage) ListSubscriberInfo(ctx context.Context, courseID int) ([]*models.SubscriberInfo, error) {
	const op = "storage.ListSubscriberInfo"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, c.title
			  FROM subscriptions s
			  JOIN users u ON s.user_uid = u.uid
			  JOIN courses c ON s.course_id = c.id
			  WHERE s.course_id = $1
			  ORDER BY s.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriberInfo
	for rows.Next() {
		var si models.SubscriberInfo
		if err := rows.Scan(&si.Email, &si.CourseTitle); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &si)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
