package rabbitmq

import (
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lms-backend/internal/lib/sl"
	"github.com/magabrotheeeer/lms-backend/internal/models"
)

// CourseUpdateNotifier публикует события об обновлении курса.
// Отправка выполняется в отдельной горутине: сбой публикации
// логируется и никогда не доходит до вызвавшего запроса.
type CourseUpdateNotifier struct {
	ch         *amqp.Channel
	routingKey string
	log        *slog.Logger
}

// NewCourseUpdateNotifier создает новый CourseUpdateNotifier.
func NewCourseUpdateNotifier(ch *amqp.Channel, routingKey string, log *slog.Logger) *CourseUpdateNotifier {
	return &CourseUpdateNotifier{
		ch:         ch,
		routingKey: routingKey,
		log:        log,
	}
}

// NotifyCourseUpdated отправляет событие с идентификатором курса, не блокируя вызвавшего.
func (n *CourseUpdateNotifier) NotifyCourseUpdated(courseID int) {
	go func() {
		event := models.CourseUpdatedEvent{CourseID: courseID}
		if err := PublishEvent(n.ch, ExchangeName, n.routingKey, event); err != nil {
			n.log.Error("failed to publish course updated event",
				slog.Int("course_id", courseID), sl.Err(err))
		}
	}()
}
