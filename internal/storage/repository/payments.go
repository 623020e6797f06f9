package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/lms-backend/internal/models"
)

// CreatePayment сохраняет запись о платеже и возвращает её ID.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, course_id, lesson_id, amount, method,
			      stripe_product_id, stripe_price_id, stripe_session_id, checkout_url, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.UserUID, payment.CourseID, payment.LessonID, payment.Amount,
		payment.Method, payment.StripeProductID, payment.StripePriceID,
		payment.StripeSessionID, payment.CheckoutURL, payment.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPayments возвращает платежи с учётом фильтров по курсу, уроку и способу
// оплаты, упорядоченные по дате.
func (s *Storage) ListPayments(ctx context.Context, filter models.PaymentFilter, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, course_id, lesson_id, amount, method,
			      stripe_product_id, stripe_price_id, stripe_session_id, checkout_url,
			      status, created_at
			  FROM payments
			  WHERE ($1::int IS NULL OR course_id = $1)
			    AND ($2::int IS NULL OR lesson_id = $2)
			    AND ($3::text = '' OR method = $3)
			  ORDER BY created_at DESC
			  LIMIT $4 OFFSET $5`
	rows, err := s.DB.QueryContext(ctx, query,
		filter.CourseID, filter.LessonID, filter.Method, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		var courseID, lessonID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.UserUID, &courseID, &lessonID, &p.Amount,
			&p.Method, &p.StripeProductID, &p.StripePriceID, &p.StripeSessionID,
			&p.CheckoutURL, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if courseID.Valid {
			id := int(courseID.Int64)
			p.CourseID = &id
		}
		if lessonID.Valid {
			id := int(lessonID.Int64)
			p.LessonID = &id
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
