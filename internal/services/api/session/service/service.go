// Package service bridges the session module to the identity provider
package service

import (
	"context"

	"repairlog/internal/adapters/identity"
	perr "repairlog/internal/platform/errors"
	"repairlog/internal/services/api/session/domain"
)

// Provider is the slice of the identity client this service consumes
type Provider interface {
	Session(ctx context.Context, token string) (*identity.Session, error)
	SignOut(ctx context.Context, token string) error
}

// Service defines the session service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the session service
type Svc struct {
	provider Provider
}

// New constructs a session service
func New(p Provider) *Svc {
	if p == nil {
		panic("session.Service requires a non nil Provider")
	}
	return &Svc{provider: p}
}

// Current resolves the bearer token through the identity provider
func (s *Svc) Current(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, perr.Unauthorizedf("missing bearer token")
	}
	sess, err := s.provider.Session(ctx, token)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{UserID: sess.UserID, Email: sess.Email}, nil
}

// SignOut revokes the session; an already-expired token is not an error
func (s *Svc) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return perr.Unauthorizedf("missing bearer token")
	}
	return s.provider.SignOut(ctx, token)
}
