// Package mailer sends transactional email over SMTP or the Mailtrap API.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/LeroySteding/medusajs-yn-railway/internal/config"
)

type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string // optional display name
	From     string

	To  []string
	Cc  []string
	Bcc []string

	Subject string

	TextBody string
	HTMLBody string

	Headers map[string]string // extra headers, optional
}

func (e Email) AllRecipients() []string {
	out := make([]string, 0, len(e.To)+len(e.Cc)+len(e.Bcc))
	out = append(out, e.To...)
	out = append(out, e.Cc...)
	out = append(out, e.Bcc...)
	return out
}

// WithDefaults fills the sender from cfg when the email has none.
func WithDefaults(e Email, cfg config.MailConfig) Email {
	if e.From == "" {
		e.From = cfg.From
	}
	if e.FromName == "" {
		e.FromName = cfg.FromName
	}
	return e
}

// FromConfig picks the mail driver.
func FromConfig(cfg config.MailConfig, logger *slog.Logger) (Service, error) {
	switch cfg.Driver {
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("mailer: SMTP_HOST is required for the smtp driver")
		}
		return NewSMTPMailer(cfg), nil
	case "mailtrap":
		if cfg.MailtrapToken == "" {
			return nil, fmt.Errorf("mailer: MAILTRAP_TOKEN is required for the mailtrap driver")
		}
		return NewMailtrapMailer(cfg, &http.Client{Timeout: 10 * time.Second}), nil
	case "log", "":
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("mailer: unknown driver %q", cfg.Driver)
	}
}
