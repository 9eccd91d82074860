// Package ratelimit is the client side of the generic submission
// throttle: a sliding-window counter keyed by client identity. The
// counter itself lives in a remote backend; this package only asks
// "is this identifier still under quota". Independent from the
// persistence-enforced one-post-per-60s cadence check, which the
// database applies on top of this.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter is the remote counter collaborator.
type Limiter interface {
	Limit(ctx context.Context, identifier string) (Result, error)
}

// Key builds the bucket identifier for an action kind and client
// identity, e.g. "thread:203.0.113.7" or "response:anonymous".
func Key(kind, identity string) string {
	return fmt.Sprintf("%s:%s", kind, identity)
}

// Checker wraps a Limiter with the availability-over-strictness
// policy: when the backend is unconfigured or unreachable the check
// degrades open instead of blocking submissions. Constructed once at
// startup and shared across requests.
type Checker struct {
	limiter Limiter
}

func NewChecker(limiter Limiter) *Checker {
	if limiter == nil {
		slog.Warn("rate limiting is disabled: no backend configured")
	}
	return &Checker{limiter: limiter}
}

// Check never fails: backend errors are logged and treated as allowed.
func (c *Checker) Check(ctx context.Context, identifier string) Result {
	if c == nil || c.limiter == nil {
		return Result{Allowed: true}
	}

	res, err := c.limiter.Limit(ctx, identifier)
	if err != nil {
		slog.Warn("rate limit backend unavailable, allowing request", "identifier", identifier, "error", err)
		return Result{Allowed: true}
	}
	return res
}
