package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SignUpEmailData holds data for the sign-up confirmation email.
type SignUpEmailData struct {
	Email        string
	PositionName string
	SlotStart    time.Time
	SlotEnd      time.Time
	CheckInURL   string
}

// CheckInEmailData holds data for the check-in confirmation email.
type CheckInEmailData struct {
	Email        string
	PositionName string
	SlotStart    time.Time
	SlotEnd      time.Time
}

// EmailService defines the contract for sending volunteer notifications.
type EmailService interface {
	SendSignUpConfirmation(ctx context.Context, data *SignUpEmailData) error
	SendCheckInConfirmation(ctx context.Context, data *CheckInEmailData) error
}

// CheckInLinker builds the public check-in link of a position and its scannable image.
type CheckInLinker interface {
	URL(positionID string) string
	PNG(positionID string) ([]byte, error)
}
