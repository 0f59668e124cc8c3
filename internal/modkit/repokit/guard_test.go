package repokit

import (
	"context"
	"strings"
	"testing"
	"time"
)

type pingSpy struct {
	gotCtx context.Context
	err    error
}

func (p *pingSpy) Ping(ctx context.Context) error {
	p.gotCtx = ctx
	return p.err
}

type guardStub struct{ err error }

func (g guardStub) Guard(context.Context) error { return g.err }

type errText string

func (e errText) Error() string { return string(e) }

// expectPanic runs fn and asserts it panics with a message containing wantSub
func expectPanic(t *testing.T, wantSub string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", wantSub)
		}
		var msg string
		switch x := r.(type) {
		case string:
			msg = x
		case error:
			msg = x.Error()
		}
		if !strings.Contains(msg, wantSub) {
			t.Fatalf("panic = %q, want contains %q", msg, wantSub)
		}
	}()
	fn()
}

func TestMustPing_NilDependencyPanics(t *testing.T) {
	t.Parallel()
	expectPanic(t, "pg: nil dependency", func() {
		MustPing(context.Background(), "pg", nil)
	})
}

func TestMustPing_DefaultsTimeoutWhenNone(t *testing.T) {
	t.Parallel()

	spy := &pingSpy{}
	start := time.Now()

	MustPing(context.Background(), "pg", spy)

	if spy.gotCtx == nil {
		t.Fatal("pinger never saw a context")
	}
	dl, ok := spy.gotCtx.Deadline()
	if !ok {
		t.Fatal("expected a deadline on the ping context")
	}
	if got := dl.Sub(start); got < 4*time.Second || got > 6*time.Second {
		t.Fatalf("default deadline not ~5s: got %v", got)
	}
}

func TestMustPing_KeepsCallerDeadline(t *testing.T) {
	t.Parallel()

	spy := &pingSpy{}
	parent, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	MustPing(parent, "pg", spy)

	dlWant, _ := parent.Deadline()
	dlGot, ok := spy.gotCtx.Deadline()
	if !ok {
		t.Fatal("ping context lost the caller's deadline")
	}
	if diff := dlGot.Sub(dlWant); diff < -2*time.Millisecond || diff > 2*time.Millisecond {
		t.Fatalf("ping deadline drifted from caller's: got %v want %v", dlGot, dlWant)
	}
}

func TestMustPing_PanicsOnPingError(t *testing.T) {
	t.Parallel()
	expectPanic(t, "pg ping failed: down", func() {
		MustPing(context.Background(), "pg", &pingSpy{err: errText("down")})
	})
}

func TestMustGuard_PanicsOnGuardError(t *testing.T) {
	t.Parallel()
	expectPanic(t, "dependency guard failed: down", func() {
		MustGuard(context.Background(), guardStub{err: errText("down")})
	})
}

func TestMustGuard_PassesWhenHealthy(t *testing.T) {
	t.Parallel()
	MustGuard(context.Background(), guardStub{})
}
