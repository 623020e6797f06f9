// Package sender содержит рассылку писем подписчикам об обновлении курса.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/lms-backend/internal/lib/sl"
	smtplib "github.com/magabrotheeeer/lms-backend/internal/lib/smtp"
	"github.com/magabrotheeeer/lms-backend/internal/models"
)

// SubscriberRepository возвращает адресатов рассылки по курсу.
type SubscriberRepository interface {
	ListSubscriberInfo(ctx context.Context, courseID int) ([]*models.SubscriberInfo, error)
}

// SenderService рассылает письма подписчикам обновившихся курсов.
type SenderService struct {
	repo      SubscriberRepository
	transport smtplib.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(repo SubscriberRepository, transport smtplib.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		repo:      repo,
		transport: transport,
		log:       log,
	}
}

// SendCourseUpdateNotifications обрабатывает событие обновления курса:
// находит подписчиков и отправляет каждому письмо. Сбой отправки одному
// адресату логируется и не прерывает рассылку остальным.
func (s *SenderService) SendCourseUpdateNotifications(ctx context.Context, body []byte) error {
	var event models.CourseUpdatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal course updated event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subscribers, err := s.repo.ListSubscriberInfo(ctx, event.CourseID)
	if err != nil {
		s.log.Error("failed to list subscribers",
			slog.Int("course_id", event.CourseID), sl.Err(err))
		return err
	}
	if len(subscribers) == 0 {
		s.log.Info("course has no subscribers, nothing to send",
			slog.Int("course_id", event.CourseID))
		return nil
	}

	for _, sub := range subscribers {
		subject := fmt.Sprintf("Обновление курса «%s»", sub.CourseTitle)
		bodyText := fmt.Sprintf("Здравствуйте!\n\nМатериалы курса «%s», на который вы подписаны, обновились.\n\nЗагляните на платформу, чтобы посмотреть изменения.",
			sub.CourseTitle)
		if err := s.sendEmail([]string{sub.Email}, subject, bodyText); err != nil {
			s.log.Error("failed to send course update email",
				slog.String("recipient", sub.Email), sl.Err(err))
			continue
		}
	}

	s.log.Info("course update notifications processed",
		slog.Int("course_id", event.CourseID),
		slog.Int("subscribers", len(subscribers)))
	return nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		return err
	}
	if err = wc.Close(); err != nil {
		return err
	}
	return client.Quit()
}
