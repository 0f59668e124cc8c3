package service

import (
	"context"
	"errors"
	"testing"

	"repairlog/internal/adapters/identity"
	perr "repairlog/internal/platform/errors"
)

type fakeProvider struct {
	sess       *identity.Session
	sessErr    error
	signOutErr error

	gotToken string
}

func (f *fakeProvider) Session(_ context.Context, token string) (*identity.Session, error) {
	f.gotToken = token
	return f.sess, f.sessErr
}

func (f *fakeProvider) SignOut(_ context.Context, token string) error {
	f.gotToken = token
	return f.signOutErr
}

func TestCurrentResolvesSession(t *testing.T) {
	p := &fakeProvider{sess: &identity.Session{UserID: "u-1", Email: "a@b.c"}}
	s := New(p)

	sess, err := s.Current(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if sess.UserID != "u-1" || sess.Email != "a@b.c" {
		t.Errorf("sess = %+v", sess)
	}
	if p.gotToken != "tok" {
		t.Errorf("token = %q, want passthrough", p.gotToken)
	}
}

func TestCurrentRejectsEmptyToken(t *testing.T) {
	p := &fakeProvider{}
	s := New(p)

	_, err := s.Current(context.Background(), "")
	if perr.CodeOf(err) != perr.ErrorCodeUnauthorized {
		t.Fatalf("want unauthorized, got %v", err)
	}
	if p.gotToken != "" {
		t.Error("empty token must not reach the provider")
	}
}

func TestCurrentPropagatesProviderError(t *testing.T) {
	p := &fakeProvider{sessErr: perr.Unauthorizedf("no active session")}
	s := New(p)

	if _, err := s.Current(context.Background(), "expired"); perr.CodeOf(err) != perr.ErrorCodeUnauthorized {
		t.Fatalf("want unauthorized, got %v", err)
	}
}

func TestSignOut(t *testing.T) {
	p := &fakeProvider{}
	s := New(p)

	if err := s.SignOut(context.Background(), "tok"); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if err := s.SignOut(context.Background(), ""); perr.CodeOf(err) != perr.ErrorCodeUnauthorized {
		t.Fatalf("want unauthorized for empty token, got %v", err)
	}

	p.signOutErr = errors.New("provider down")
	if err := s.SignOut(context.Background(), "tok"); err == nil {
		t.Fatal("want provider error surfaced")
	}
}
