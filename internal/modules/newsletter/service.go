// Package newsletter stores footer newsletter sign-ups.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/LeroySteding/medusajs-yn-railway/internal/mailer"
)

var (
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrInvalidEmail      = errors.New("Please enter a valid email address")
)

type Store interface {
	Create(ctx context.Context, s *Subscription) error
	DeleteByEmail(ctx context.Context, email string) (bool, error)
}

type Service struct {
	store    Store
	mail     mailer.Service
	validate *validator.Validate
	logger   *slog.Logger
	baseURL  string
	now      func() time.Time
}

func NewService(store Store, mail mailer.Service, baseURL string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		mail:     mail,
		validate: validator.New(),
		logger:   logger,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}
}

func (s *Service) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Subscribe records email. On ErrAlreadySubscribed no mail is sent.
func (s *Service) Subscribe(ctx context.Context, email, countryCode string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email,max=255"); err != nil {
		return ErrInvalidEmail
	}
	countryCode = strings.ToLower(strings.TrimSpace(countryCode))

	sub := &Subscription{
		ID:          uuid.NewString(),
		Email:       email,
		CountryCode: countryCode,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, sub); err != nil {
		if errors.Is(err, ErrAlreadySubscribed) {
			return err
		}
		return fmt.Errorf("newsletter subscribe: %w", err)
	}
	s.logger.InfoContext(ctx, "newsletter_subscribed", "subscription_id", sub.ID, "country_code", countryCode)

	if s.mail != nil {
		if err := s.mail.Send(ctx, s.welcome(sub)); err != nil {
			s.logger.ErrorContext(ctx, "newsletter_welcome_failed", "subscription_id", sub.ID, "error", err)
		}
	}
	return nil
}

func (s *Service) Unsubscribe(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, ErrInvalidEmail
	}
	return s.store.DeleteByEmail(ctx, email)
}

func (s *Service) welcome(sub *Subscription) mailer.Email {
	shop := s.baseURL + "/" + sub.CountryCode
	return mailer.Email{
		To:       []string{sub.Email},
		Subject:  "Welcome to our newsletter",
		TextBody: "Thanks for subscribing. New arrivals and offers will land in your inbox.\n\n" + shop + "\n",
		HTMLBody: `<p>Thanks for subscribing. New arrivals and offers will land in your inbox.</p><p><a href="` + shop + `">Visit the shop</a></p>`,
		Headers:  map[string]string{"X-Category": "newsletter"},
	}
}
