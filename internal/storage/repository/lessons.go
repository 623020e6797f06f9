package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/lms-backend/internal/models"
)

// CreateLesson вставляет новый урок и возвращает его ID.
func (s *Storage) CreateLesson(ctx context.Context, lesson models.Lesson) (int, error) {
	const op = "storage.CreateLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO lessons (owner_uid, course_id, title, description, preview_url, video_url, price)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		lesson.OwnerUID, lesson.CourseID, lesson.Title, lesson.Description,
		lesson.PreviewURL, lesson.VideoURL, lesson.Price).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadLesson возвращает данные урока по его ID.
func (s *Storage) ReadLesson(ctx context.Context, id int) (*models.Lesson, error) {
	const op = "storage.ReadLesson"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, course_id, title, description, preview_url, video_url, price
			  FROM lessons WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Lesson
	if err := row.Scan(&result.ID, &result.OwnerUID, &result.CourseID, &result.Title,
		&result.Description, &result.PreviewURL, &result.VideoURL, &result.Price); err != nil {
		return nil, wrapRowError(op, err)
	}
	return &result, nil
}

// UpdateLesson обновляет данные урока и возвращает количество изменённых строк.
func (s *Storage) UpdateLesson(ctx context.Context, req models.DummyLesson, id int) (int, error) {
	const op = "storage.UpdateLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE lessons
			  SET course_id = $1, title = $2, description = $3, preview_url = $4,
			      video_url = $5, price = $6
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		req.CourseID, req.Title, req.Description, req.PreviewURL, req.VideoURL,
		req.Price, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveLesson удаляет урок по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveLesson(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM lessons WHERE id = $1`
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

// ListLessons возвращает список всех уроков с пагинацией.
func (s *Storage) ListLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error) {
	const op = "storage.ListLessons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, course_id, title, description, preview_url, video_url, price
			  FROM lessons
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanLessons(rows, op)
}

// ListLessonsByCourse возвращает уроки курса.
func (s *Storage) ListLessonsByCourse(ctx context.Context, courseID int) ([]*models.Lesson, error) {
	const op = "storage.ListLessonsByCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, course_id, title, description, preview_url, video_url, price
			  FROM lessons
			  WHERE course_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanLessons(rows, op)
}

func scanLessons(rows *sql.Rows, op string) ([]*models.Lesson, error) {
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Lesson
	for rows.Next() {
		var item models.Lesson
		if err := rows.Scan(&item.ID, &item.OwnerUID, &item.CourseID, &item.Title,
			&item.Description, &item.PreviewURL, &item.VideoURL, &item.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
