package mailer

import (
	"context"
	"log/slog"
	"strings"
)

// LogMailer only logs; used in development.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, e Email) error {
	m.logger.InfoContext(ctx, "email",
		"from", e.From,
		"to", strings.Join(e.To, ","),
		"subject", e.Subject,
		"bytes", len(e.TextBody)+len(e.HTMLBody),
	)
	return nil
}
