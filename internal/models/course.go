package models

import "time"

// Course представляет курс, принадлежащий одному владельцу.
// Поле UpdatedAt может быть nil — курс ещё ни разу не обновлялся.
type Course struct {
	ID          int        `json:"id"`
	OwnerUID    string     `json:"owner_uid"`   // Владелец (создатель) курса
	Title       string     `json:"title"`       // Название курса
	Description string     `json:"description"` // Описание (опционально)
	PreviewURL  string     `json:"preview,omitempty"`
	Price       *float64   `json:"price,omitempty"` // Цена курса (опционально)
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CourseDetail — представление курса для ответа API:
// сам курс, его уроки, количество уроков и признак подписки запрашивающего.
type CourseDetail struct {
	Course
	Lessons      []*Lesson `json:"lessons"`
	LessonsCount int       `json:"lessons_count"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// DummyCourse используется для приёма данных курса из JSON-запроса.
type DummyCourse struct {
	Title       string   `json:"title" validate:"required,max=255"` // Название курса
	Description string   `json:"description"`                       // Описание
	PreviewURL  string   `json:"preview"`                           // Ссылка на превью
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`   // Цена
}
