package membership

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeChecker struct {
	member bool
	err    error
	calls  int
}

func (f *fakeChecker) IsMember(context.Context, int64) (bool, error) {
	f.calls++
	return f.member, f.err
}

func TestGateAllowsMember(t *testing.T) {
	c := &fakeChecker{member: true}
	g := NewGate(c, 5, 10*time.Minute)

	if v := g.Check(context.Background(), 1); v != Allowed {
		t.Fatalf("expected Allowed, got %v", v)
	}
	if c.calls != 1 {
		t.Fatalf("checker not consulted")
	}
}

func TestGateDeniesNonMember(t *testing.T) {
	g := NewGate(&fakeChecker{member: false}, 5, 10*time.Minute)
	if v := g.Check(context.Background(), 1); v != NotMember {
		t.Fatalf("expected NotMember, got %v", v)
	}
}

func TestGateFailsClosedOnError(t *testing.T) {
	c := &fakeChecker{member: true, err: errors.New("api down")}
	g := NewGate(c, 5, 10*time.Minute)
	if v := g.Check(context.Background(), 1); v != NotMember {
		t.Fatalf("lookup error must deny, got %v", v)
	}
}

func TestGateRateLimitsPerUser(t *testing.T) {
	c := &fakeChecker{member: true}
	g := NewGate(c, 5, 10*time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if v := g.Check(ctx, 1); v != Allowed {
			t.Fatalf("check %d: expected Allowed, got %v", i, v)
		}
	}
	if v := g.Check(ctx, 1); v != RateLimited {
		t.Fatalf("sixth check must be rate limited, got %v", v)
	}
	if c.calls != 5 {
		t.Fatalf("limited check must not reach the API, calls=%d", c.calls)
	}

	// other users keep their own allowance
	if v := g.Check(ctx, 2); v != Allowed {
		t.Fatalf("limit leaked across users, got %v", v)
	}
}

func TestRateLimiterSlidingWindow(t *testing.T) {
	r := newRateLimiter(2, time.Minute)
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }

	if !r.allow(1) || !r.allow(1) {
		t.Fatalf("first two attempts must pass")
	}
	if r.allow(1) {
		t.Fatalf("third attempt within window must fail")
	}

	// denied attempts do not extend the window
	now = now.Add(61 * time.Second)
	if !r.allow(1) {
		t.Fatalf("allowance must return after the window slides")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	r := newRateLimiter(2, time.Minute)
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }

	r.allow(1)
	r.allow(2)
	now = now.Add(2 * time.Minute)
	r.sweep()

	r.mu.Lock()
	n := len(r.hits)
	r.mu.Unlock()
	if n != 0 {
		t.Fatalf("stale entries not swept, have %d", n)
	}
}
