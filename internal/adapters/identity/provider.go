// Package identity is a thin client for the hosted identity provider.
// It consumes exactly two operations: resolve the session behind a bearer
// token, and sign that session out.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	perr "repairlog/internal/platform/errors"
)

// Options configures the provider client
type Options struct {
	// BaseURL is the auth endpoint root, e.g. https://xyz.example.co/auth/v1
	BaseURL string

	// APIKey is sent as the apikey header when set (hosted providers require it)
	APIKey string

	// Timeout bounds each call; zero means 10s
	Timeout time.Duration
}

// Session describes the authenticated principal behind a token
type Session struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
}

// Client talks to the identity provider over HTTP
type Client struct {
	base   string
	apiKey string
	hc     *http.Client
}

// New builds a Client from Options
func New(opt Options) *Client {
	t := opt.Timeout
	if t <= 0 {
		t = 10 * time.Second
	}
	return &Client{
		base:   strings.TrimRight(opt.BaseURL, "/"),
		apiKey: opt.APIKey,
		hc:     &http.Client{Timeout: t},
	}
}

// Session resolves the bearer token to an active session.
// An unauthenticated token is not an error condition for callers that only
// want present/absent, but it is reported as an unauthorized error so the
// HTTP layer can map it to 401 directly.
func (c *Client) Session(ctx context.Context, token string) (*Session, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user", token)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "identity provider unreachable")
	}
	defer drain(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		var s Session
		if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "identity provider returned malformed session")
		}
		if s.UserID == "" {
			return nil, perr.Unauthorizedf("no active session")
		}
		return &s, nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, perr.Unauthorizedf("no active session")
	default:
		return nil, perr.Unavailablef("identity provider status %d", resp.StatusCode)
	}
}

// SignOut revokes the session behind the token. A token the provider no
// longer recognizes is treated as already signed out.
func (c *Client) SignOut(ctx context.Context, token string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/logout", token)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "identity provider unreachable")
	}
	defer drain(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusUnauthorized:
		return nil
	default:
		return perr.Unavailablef("identity provider status %d", resp.StatusCode)
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	return req, nil
}

// drain lets the transport reuse the connection
func drain(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 4<<10))
	_ = rc.Close()
}
