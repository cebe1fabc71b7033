package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"volunteerhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, html, text string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html, text: text})
	return nil
}

type stubRenderer struct {
	templates []string
	err       error
}

func (r *stubRenderer) Render(name string, data any) (string, string, string, error) {
	r.templates = append(r.templates, name)
	if r.err != nil {
		return "", "", "", r.err
	}
	return "subject:" + name, "<p>" + name + "</p>", name, nil
}

func TestEmailService_SendsNamedTemplates(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{}
	renderer := &stubRenderer{}
	svc := NewEmailService(mailer, renderer, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, svc.SendSignUpConfirmation(ctx, &domain.SignUpEmailData{Email: "alice@example.com", PositionName: "Greeter"}))
	require.NoError(t, svc.SendCheckInConfirmation(ctx, &domain.CheckInEmailData{Email: "bob@example.com", PositionName: "Greeter"}))

	assert.Equal(t, []string{"signup_confirmation", "checkin_confirmation"}, renderer.templates)
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, sentMail{to: "alice@example.com", subject: "subject:signup_confirmation", html: "<p>signup_confirmation</p>", text: "signup_confirmation"}, mailer.sent[0])
	assert.Equal(t, "bob@example.com", mailer.sent[1].to)
}

func TestEmailService_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&recordingMailer{}, &stubRenderer{}, nil)
		assert.Error(t, svc.SendSignUpConfirmation(ctx, nil))
		assert.Error(t, svc.SendCheckInConfirmation(ctx, nil))
	})

	t.Run("render failure skips the mailer", func(t *testing.T) {
		mailer := &recordingMailer{}
		renderErr := errors.New("template: missing")
		svc := NewEmailService(mailer, &stubRenderer{err: renderErr}, nil)

		err := svc.SendSignUpConfirmation(ctx, &domain.SignUpEmailData{Email: "alice@example.com"})
		require.ErrorIs(t, err, renderErr)
		assert.Empty(t, mailer.sent)
	})

	t.Run("send failure is wrapped", func(t *testing.T) {
		sendErr := errors.New("ses: throttled")
		svc := NewEmailService(&recordingMailer{err: sendErr}, &stubRenderer{}, nil)

		err := svc.SendCheckInConfirmation(ctx, &domain.CheckInEmailData{Email: "alice@example.com"})
		require.ErrorIs(t, err, sendErr)
		assert.Contains(t, err.Error(), "checkin_confirmation")
	})
}
