package services

import (
	"context"
	"fmt"
	"log/slog"

	"neurobiomark/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendDemoRequestNotification tells the operations mailbox about a new demo request.
// Replies go to the submitter.
func (s *emailService) SendDemoRequestNotification(ctx context.Context, data *domain.DemoRequestEmailData) error {
	if data == nil {
		return fmt.Errorf("demo request email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("demo_request", data)
	if err != nil {
		return fmt.Errorf("failed to render demo_request template: %w", err)
	}
	msg := domain.EmailMessage{To: data.To, ReplyTo: data.Email, Subject: subject, HTML: htmlBody, Text: textBody}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send demo request notification: %w", err)
	}
	s.logger.InfoContext(ctx, "demo request notification sent", "to", data.To)
	return nil
}

// SendContactMessage forwards a contact form message to the operations mailbox.
func (s *emailService) SendContactMessage(ctx context.Context, data *domain.ContactEmailData) error {
	if data == nil {
		return fmt.Errorf("contact email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("contact_message", data)
	if err != nil {
		return fmt.Errorf("failed to render contact_message template: %w", err)
	}
	msg := domain.EmailMessage{To: data.To, ReplyTo: data.UserEmail, Subject: subject, HTML: htmlBody, Text: textBody}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send contact message: %w", err)
	}
	s.logger.InfoContext(ctx, "contact message forwarded", "to", data.To)
	return nil
}
