package domain

import "context"

// ServicePort is consumed by handlers and the auth middleware
type ServicePort interface {
	// Current resolves the bearer token to an active session or an
	// unauthorized error when none exists
	Current(ctx context.Context, token string) (Session, error)

	// SignOut revokes the session behind the token
	SignOut(ctx context.Context, token string) error
}
