package domain

import "context"

// EmailMessage is one outbound email. ReplyTo is optional.
type EmailMessage struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// DemoRequestEmailData holds data for the operations notification about a new demo request.
type DemoRequestEmailData struct {
	To      string
	Name    string
	Email   string
	Purpose string
	IP      string
}

// ContactEmailData holds data for a public contact form message.
type ContactEmailData struct {
	To        string
	UserEmail string
	Message   string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendDemoRequestNotification(ctx context.Context, data *DemoRequestEmailData) error
	SendContactMessage(ctx context.Context, data *ContactEmailData) error
}

// ContactService forwards public contact form messages to the operations mailbox.
type ContactService interface {
	Send(ctx context.Context, userEmail, message string) error
}
