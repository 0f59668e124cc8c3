package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "repairlog/internal/platform/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, APIKey: "anon-key"})
}

func TestSessionResolves(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" || r.Method != http.MethodGet {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("apikey = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u-1","email":"a@b.c"}`))
	})

	s, err := c.Session(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if s.UserID != "u-1" || s.Email != "a@b.c" {
		t.Errorf("session = %+v", s)
	}
}

func TestSessionAbsent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Session(context.Background(), "expired")
	if perr.CodeOf(err) != perr.ErrorCodeUnauthorized {
		t.Fatalf("want unauthorized, got %v", err)
	}
}

func TestSessionProviderFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Session(context.Background(), "tok")
	if perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestSignOut(t *testing.T) {
	var path, method string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.SignOut(context.Background(), "tok"); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if path != "/logout" || method != http.MethodPost {
		t.Errorf("call = %s %s", method, path)
	}
}

func TestSignOutExpiredTokenIsFine(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if err := c.SignOut(context.Background(), "stale"); err != nil {
		t.Fatalf("expired token should sign out cleanly, got %v", err)
	}
}
