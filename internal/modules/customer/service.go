// Package customer handles storefront login against the commerce backend.
package customer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
)

var ErrInvalidCredentials = errors.New("Invalid email or password")

type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	RetrieveCustomer(ctx context.Context) (*medusa.Customer, error)
}

type Service struct {
	backend Backend
	logger  *slog.Logger
}

func NewService(backend Backend, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: backend, logger: logger}
}

// Login returns the customer token to store in the auth cookie.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	tok, err := s.backend.Login(ctx, email, password)
	if medusa.IsUnauthorized(err) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", ErrInvalidCredentials
	}
	return tok, nil
}

// Retrieve returns the logged-in customer or nil when ctx carries no valid token.
func (s *Service) Retrieve(ctx context.Context) *medusa.Customer {
	if medusa.TokenFrom(ctx) == "" {
		return nil
	}
	c, err := s.backend.RetrieveCustomer(ctx)
	if err != nil {
		if !medusa.IsUnauthorized(err) {
			s.logger.WarnContext(ctx, "retrieve customer failed", "err", err)
		}
		return nil
	}
	return c
}
