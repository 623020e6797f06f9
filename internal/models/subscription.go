package models

import "time"

// Subscription — связь пользователя и курса.
// На пару (user_uid, course_id) существует не более одной записи,
// уникальность обеспечивается ограничением в базе данных.
type Subscription struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"user_uid"`
	CourseID  int       `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriberInfo — данные подписчика для рассылки уведомлений об обновлении курса.
type SubscriberInfo struct {
	Email       string `json:"email"`
	CourseTitle string `json:"course_title"`
}

// CourseUpdatedEvent — сообщение о том, что курс был обновлён.
// Публикуется в очередь и обрабатывается сервисом рассылки.
type CourseUpdatedEvent struct {
	CourseID int `json:"course_id"`
}
