package services

import (
	"context"
	"fmt"
	"log/slog"

	"volunteerhub/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendSignUpConfirmation sends the "signup_confirmation" template.
func (s *emailService) SendSignUpConfirmation(ctx context.Context, data *domain.SignUpEmailData) error {
	if data == nil {
		return fmt.Errorf("sign-up email data is nil")
	}
	return s.send(ctx, "signup_confirmation", data.Email, data)
}

// SendCheckInConfirmation sends the "checkin_confirmation" template.
func (s *emailService) SendCheckInConfirmation(ctx context.Context, data *domain.CheckInEmailData) error {
	if data == nil {
		return fmt.Errorf("check-in email data is nil")
	}
	return s.send(ctx, "checkin_confirmation", data.Email, data)
}

func (s *emailService) send(ctx context.Context, template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", template, "to", to)
	return nil
}
