package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"neurobiomark/internal/domain"
)

const maxContactMessageLen = 5000

type contactService struct {
	emailService domain.EmailService
	to           string
}

// NewContactService returns a ContactService that mails messages to the operations mailbox.
func NewContactService(emailService domain.EmailService, to string) domain.ContactService {
	return &contactService{emailService: emailService, to: to}
}

func (s *contactService) Send(ctx context.Context, userEmail, message string) error {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	message = strings.TrimSpace(message)
	if !domain.ValidEmail(userEmail) {
		return fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(message); n == 0 || n > maxContactMessageLen {
		return fmt.Errorf("%w: message must be between 1 and %d characters", domain.ErrInvalidInput, maxContactMessageLen)
	}
	return s.emailService.SendContactMessage(ctx, &domain.ContactEmailData{
		To:        s.to,
		UserEmail: userEmail,
		Message:   message,
	})
}
