package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"volunteerhub/internal/domain"
)

// SESConfig holds the AWS settings of the SES provider.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig selects and configures the mail provider.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
	Logger      *slog.Logger
}

// NewMailer returns the mailer named by config.Provider: "ses", or "noop"/"" for one that only logs.
// Unknown providers fall back to noop with a warning.
func NewMailer(config MailerConfig) (domain.Mailer, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch config.Provider {
	case "ses":
		if config.SES.Region == "" || config.FromAddress == "" {
			return nil, fmt.Errorf("ses mailer requires a region and a from address")
		}
		if config.SES.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES, use only in development")
		}
		return &sesMailer{
			client: newSESClient(config.SES),
			from:   sender(config.FromName, config.FromAddress),
			logger: logger,
		}, nil
	case "noop", "":
		return noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		return noopMailer{logger: logger}, nil
	}
}

// sesSender is the part of the SES client the mailer uses.
type sesSender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func newSESClient(cfg SESConfig) sesSender {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify, MinVersion: tls.VersionTLS12},
	}
	return ses.NewFromConfig(aws.Config{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		HTTPClient:  &http.Client{Transport: transport},
	})
}

func sender(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

type sesMailer struct {
	client sesSender
	from   string
	logger *slog.Logger
}

func (m *sesMailer) Send(ctx context.Context, to, subject, html, text string) error {
	out, err := m.client.SendEmail(ctx, newSendEmailInput(m.from, to, subject, html, text))
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", to, err)
	}
	m.logger.DebugContext(ctx, "email sent via SES", "message_id", aws.ToString(out.MessageId))
	return nil
}

// newSendEmailInput builds a single-recipient message. Empty bodies are omitted.
func newSendEmailInput(from, to, subject, html, text string) *ses.SendEmailInput {
	body := &types.Body{}
	if html != "" {
		body.Html = utf8Content(html)
	}
	if text != "" {
		body.Text = utf8Content(text)
	}
	return &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message:     &types.Message{Subject: utf8Content(subject), Body: body},
	}
}

func utf8Content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n noopMailer) Send(ctx context.Context, to, subject, html, text string) error {
	n.logger.InfoContext(ctx, "email not sent, noop provider", "to", to, "subject", subject)
	return nil
}
