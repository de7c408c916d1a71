// Package services содержит воркер доставки уведомлений: письма через SMTP
// и SMS через заглушку в лог. После доставки статус уведомления в хранилище
// переводится в sent или failed.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	smtplib "github.com/magabrotheeeer/fund-subscriptions/internal/lib/smtp"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// StatusMarker описывает контракт отметки статуса доставленного уведомления.
type StatusMarker interface {
	MarkSent(ctx context.Context, ntfUID string) error
	MarkFailed(ctx context.Context, ntfUID string) error
}

// SenderService доставляет сообщения из очередей уведомлений.
type SenderService struct {
	transport smtplib.TransportInterface
	marker    StatusMarker
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtplib.TransportInterface, marker StatusMarker, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		marker:    marker,
		log:       log,
	}
}

// SendEmailNotification доставляет уведомление из очереди email по SMTP.
func (s *SenderService) SendEmailNotification(body []byte) error {
	var message models.NotificationMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Notificacion de BTG Pactual Fondos"
	if err := s.sendEmail([]string{message.Email}, subject, message.Content); err != nil {
		s.markFailed(message.NotificationUID)
		return err
	}
	s.markSent(message.NotificationUID)
	return nil
}

// SendSMSNotification доставляет уведомление из очереди sms. Реального
// SMS-шлюза нет, отправка имитируется записью в лог.
func (s *SenderService) SendSMSNotification(body []byte) error {
	var message models.NotificationMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	s.log.Info("sms sent successfully",
		slog.String("phone", message.Phone),
		slog.String("content", message.Content))
	s.markSent(message.NotificationUID)
	return nil
}

func (s *SenderService) markSent(ntfUID string) {
	if err := s.marker.MarkSent(context.Background(), ntfUID); err != nil {
		s.log.Error("failed to mark notification sent",
			slog.String("uid", ntfUID), sl.Err(err))
	}
}

func (s *SenderService) markFailed(ntfUID string) {
	if err := s.marker.MarkFailed(context.Background(), ntfUID); err != nil {
		s.log.Error("failed to mark notification failed",
			slog.String("uid", ntfUID), sl.Err(err))
	}
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
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

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
