package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/LeroySteding/medusajs-yn-railway/internal/config"
)

// TLS modes of MailConfig.SMTPTLSMode.
const (
	TLSModeImplicit = "tls"
	TLSModeStartTLS = "starttls"
	TLSModePlain    = "plain"
)

var ErrStartTLSUnsupported = errors.New("smtp: server does not offer STARTTLS")

// SMTPMailer delivers one message per connection.
type SMTPMailer struct {
	cfg      config.MailConfig
	timeout  time.Duration
	idDomain string
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	domain := cfg.SMTPHost
	if domain == "" {
		domain = "local"
	}
	return &SMTPMailer{cfg: cfg, timeout: 15 * time.Second, idDomain: domain}
}

func (m *SMTPMailer) mode() string {
	mode := strings.ToLower(strings.TrimSpace(m.cfg.SMTPTLSMode))
	if mode == "" {
		return TLSModeStartTLS
	}
	return mode
}

// Send honours ctx for dialing and bounds the whole conversation by the
// mailer timeout or the ctx deadline, whichever comes first.
func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	e = WithDefaults(e, m.cfg)
	raw, err := buildMIMEMessage(e, m.idDomain)
	if err != nil {
		return err
	}

	conn, err := m.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	deadline := time.Now().Add(m.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Quit()

	if err := m.secure(c); err != nil {
		return err
	}
	if err := m.auth(c); err != nil {
		return err
	}
	return deliver(c, e.From, e.AllRecipients(), raw)
}

func (m *SMTPMailer) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(m.cfg.SMTPHost, strconv.Itoa(m.cfg.SMTPPort))
	d := &net.Dialer{Timeout: 5 * time.Second}

	if m.mode() == TLSModeImplicit {
		td := &tls.Dialer{NetDialer: d, Config: m.tlsConfig()}
		conn, err := td.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("smtp dial %s (tls): %w", addr, err)
		}
		return conn, nil
	}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	return conn, nil
}

func (m *SMTPMailer) secure(c *smtp.Client) error {
	if m.mode() != TLSModeStartTLS {
		return nil
	}
	if ok, _ := c.Extension("STARTTLS"); !ok {
		return ErrStartTLSUnsupported
	}
	if err := c.StartTLS(m.tlsConfig()); err != nil {
		return fmt.Errorf("smtp starttls: %w", err)
	}
	return nil
}

// auth is skipped without credentials, as local catchers (MailHog) accept
// anonymous mail.
func (m *SMTPMailer) auth(c *smtp.Client) error {
	if m.cfg.SMTPUser == "" || m.cfg.SMTPPass == "" {
		return nil
	}
	if ok, _ := c.Extension("AUTH"); !ok {
		return nil
	}
	if err := c.Auth(smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	return nil
}

func deliver(c *smtp.Client, from string, rcpts []string, raw string) error {
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, r := range rcpts {
		if err := c.Rcpt(r); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", r, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write([]byte(raw)); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp end of data: %w", err)
	}
	return nil
}

func (m *SMTPMailer) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         m.cfg.SMTPHost,
		InsecureSkipVerify: m.cfg.SMTPSkipVerifyTLS,
	}
}
