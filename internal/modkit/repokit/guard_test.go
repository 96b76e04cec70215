package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	kit "vidqa/internal/platform/testkit"
)

// fakePinger records the ctx it saw and returns a preset error
type fakePinger struct {
	lastCtx context.Context
	err     error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.lastCtx = ctx
	return f.err
}

type fakeGuarder struct{ err error }

func (f fakeGuarder) Guard(context.Context) error { return f.err }

func TestMustPingNilDependencyPanics(t *testing.T) {
	kit.MustPanic(t, func() { MustPing(context.Background(), "pg", nil) })
}

func TestMustPingAddsDefaultTimeout(t *testing.T) {
	fp := &fakePinger{}
	start := time.Now()

	MustPing(context.Background(), "pg", fp)

	if fp.lastCtx == nil {
		t.Fatal("pinger never saw a context")
	}
	dl, ok := fp.lastCtx.Deadline()
	if !ok {
		t.Fatal("expected MustPing to set a deadline")
	}
	if got := dl.Sub(start); got < 4*time.Second || got > 6*time.Second {
		t.Fatalf("default deadline not ~5s: got %v", got)
	}
}

func TestMustPingHonorsExistingDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fp := &fakePinger{}
	MustPing(ctx, "pg", fp)

	dl, ok := fp.lastCtx.Deadline()
	if !ok {
		t.Fatal("deadline lost")
	}
	if time.Until(dl) < 50*time.Second {
		t.Fatalf("caller deadline replaced: %v", time.Until(dl))
	}
}

func TestMustPingPanicsOnError(t *testing.T) {
	kit.MustPanic(t, func() {
		MustPing(context.Background(), "pg", &fakePinger{err: errors.New("down")})
	})
}

func TestMustGuard(t *testing.T) {
	kit.MustNotPanic(t, func() { MustGuard(context.Background(), fakeGuarder{}) })
	kit.MustPanic(t, func() {
		MustGuard(context.Background(), fakeGuarder{err: errors.New("pg unreachable")})
	})
}
