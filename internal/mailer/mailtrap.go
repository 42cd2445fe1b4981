package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/LeroySteding/medusajs-yn-railway/internal/config"
)

// MailtrapMailer sends through the Mailtrap sending API.
type MailtrapMailer struct {
	cfg    config.MailConfig
	client *http.Client
}

type mailtrapPerson struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailtrapPayload struct {
	From     mailtrapPerson    `json:"from"`
	To       []mailtrapPerson  `json:"to"`
	Cc       []mailtrapPerson  `json:"cc,omitempty"`
	Bcc      []mailtrapPerson  `json:"bcc,omitempty"`
	Subject  string            `json:"subject"`
	Text     string            `json:"text,omitempty"`
	HTML     string            `json:"html,omitempty"`
	Category string            `json:"category,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}

func NewMailtrapMailer(cfg config.MailConfig, client *http.Client) *MailtrapMailer {
	if client == nil {
		client = http.DefaultClient
	}
	return &MailtrapMailer{cfg: cfg, client: client}
}

func people(addrs []string) []mailtrapPerson {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]mailtrapPerson, len(addrs))
	for i, a := range addrs {
		out[i] = mailtrapPerson{Email: a}
	}
	return out
}

func (m *MailtrapMailer) Send(ctx context.Context, e Email) error {
	e = WithDefaults(e, m.cfg)
	if len(e.To) == 0 {
		return fmt.Errorf("mailer: at least one recipient required")
	}
	payload := mailtrapPayload{
		From:     mailtrapPerson{Email: e.From, Name: e.FromName},
		To:       people(e.To),
		Cc:       people(e.Cc),
		Bcc:      people(e.Bcc),
		Subject:  e.Subject,
		Text:     e.TextBody,
		HTML:     e.HTMLBody,
		Category: "Transactional",
		Headers:  e.Headers,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.MailtrapAPIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.MailtrapToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailtrap request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 16<<10))
		if msg := gjson.GetBytes(raw, "errors.0").String(); msg != "" {
			return fmt.Errorf("mailtrap API error: %d: %s", res.StatusCode, msg)
		}
		return fmt.Errorf("mailtrap API error: %d", res.StatusCode)
	}
	return nil
}
