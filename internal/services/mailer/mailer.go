// Package mailer содержит сервис отправки приветственных писем
// новым пользователям. Сообщения приходят из очереди уведомлений
// и отправляются через SMTP транспорт.
package mailer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/videonest/backend/internal/lib/sl"
	"github.com/videonest/backend/internal/lib/smtp"
	"github.com/videonest/backend/internal/models"
)

// MailerService отправляет письма через SMTP транспорт.
type MailerService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewMailerService создает новый экземпляр MailerService.
func NewMailerService(log *slog.Logger, transport smtp.TransportInterface) *MailerService {
	return &MailerService{
		transport: transport,
		log:       log,
	}
}

// SendWelcomeEmail обрабатывает сообщение из очереди приветственных
// уведомлений и отправляет письмо новому пользователю.
func (s *MailerService) SendWelcomeEmail(body []byte) error {
	var message models.WelcomeNotification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Добро пожаловать на videonest"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nВаш аккаунт создан. Загружайте видео, подписывайтесь на каналы и делитесь своим контентом.",
		message.Username)

	return s.sendEmail(to, subject, bodyText)
}

func (s *MailerService) sendEmail(to []string, subject, bodyText string) error {
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
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
