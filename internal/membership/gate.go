// Package membership gates bot features behind channel membership. The
// gate wraps an injected checker with a per-user rate limit and treats
// lookup failures as non-membership.
package membership

import (
	"context"
	"time"

	"log/slog"

	"github.com/uma-mfg/societybot/internal/logger"
)

// Checker answers whether a user belongs to the society channel.
// The Telegram layer provides the real implementation.
type Checker interface {
	IsMember(ctx context.Context, userID int64) (bool, error)
}

// Verdict is the outcome of a gate check.
type Verdict int

const (
	// Allowed means the user is a verified member.
	Allowed Verdict = iota
	// NotMember means the user is not a member or the lookup failed.
	NotMember
	// RateLimited means the user exhausted the check allowance and the
	// checker was never consulted.
	RateLimited
)

// Gate rate-limits and performs membership checks.
type Gate struct {
	checker Checker
	limiter *rateLimiter
}

// NewGate builds a gate allowing maxChecks lookups per user per window.
func NewGate(checker Checker, maxChecks int, window time.Duration) *Gate {
	if maxChecks <= 0 {
		maxChecks = 5
	}
	if window <= 0 {
		window = 10 * time.Minute
	}
	g := &Gate{
		checker: checker,
		limiter: newRateLimiter(maxChecks, window),
	}
	go g.sweepLoop(window)
	return g
}

// Check verifies channel membership for the user. Checker errors count
// as non-membership so an available-but-unverifiable API never opens
// the gate.
func (g *Gate) Check(ctx context.Context, userID int64) Verdict {
	if !g.limiter.allow(userID) {
		logger.GATE.Warn("membership check rate limited",
			slog.String("event", "gate.rate_limited"),
			slog.Int64("user_id", userID),
		)
		return RateLimited
	}

	member, err := g.checker.IsMember(ctx, userID)
	if err != nil {
		logger.GATE.Error("membership lookup failed",
			slog.String("event", "gate.check"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return NotMember
	}
	if !member {
		logger.GATE.Info("membership denied",
			slog.String("event", "gate.denied"),
			slog.Int64("user_id", userID),
		)
		return NotMember
	}
	return Allowed
}

func (g *Gate) sweepLoop(window time.Duration) {
	t := time.NewTicker(window)
	defer t.Stop()
	for range t.C {
		g.limiter.sweep()
	}
}
