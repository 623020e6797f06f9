package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/lms-backend/internal/models"
)

// CreateCourse вставляет новый курс и возвращает его ID.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course) (int, error) {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (owner_uid, title, description, preview_url, price)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		course.OwnerUID, course.Title, course.Description, course.PreviewURL,
		course.Price).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadCourse возвращает данные курса по его ID.
func (s *Storage) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "storage.ReadCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, title, description, preview_url, price, updated_at
			  FROM courses WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Course
	var updatedAt sql.NullTime
	if err := row.Scan(&result.ID, &result.OwnerUID, &result.Title, &result.Description,
		&result.PreviewURL, &result.Price, &updatedAt); err != nil {
		return nil, wrapRowError(op, err)
	}
	if updatedAt.Valid {
		result.UpdatedAt = &updatedAt.Time
	}
	return &result, nil
}

// UpdateCourse обновляет данные курса, проставляет updated_at
// и возвращает количество изменённых строк.
func (s *Storage) UpdateCourse(ctx context.Context, req models.DummyCourse, id int) (int, error) {
	const op = "storage.UpdateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses
			  SET title = $1, description = $2, preview_url = $3, price = $4,
			      updated_at = NOW()
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		req.Title, req.Description, req.PreviewURL, req.Price, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCourse удаляет курс по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveCourse(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM courses WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListCoursesByOwner возвращает список курсов владельца с пагинацией.
func (s *Storage) ListCoursesByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Course, error) {
	const op = "storage.ListCoursesByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, title, description, preview_url, price, updated_at
			  FROM courses
			  WHERE owner_uid = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanCourses(rows, op)
}

// ListAllCourses возвращает список всех курсов с пагинацией.
func (s *Storage) ListAllCourses(ctx context.Context, limit, offset int) ([]*models.Course, error) {
	const op = "storage.ListAllCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, title, description, preview_url, price, updated_at
			  FROM courses
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanCourses(rows, op)
}

func scanCourses(rows *sql.Rows, op string) ([]*models.Course, error) {
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var item models.Course
		var updatedAt sql.NullTime
		if err := rows.Scan(&item.ID, &item.OwnerUID, &item.Title, &item.Description,
			&item.PreviewURL, &item.Price, &updatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if updatedAt.Valid {
			item.UpdatedAt = &updatedAt.Time
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
