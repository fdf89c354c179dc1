// Package retry wraps a bounded/backoff loop around the suspension points a
// caller drives against a flaky external resource sitting behind this
// core's pure predicates — a remote signer answering VerifySignature, a
// hashing accelerator answering Hash. The core itself never retries
// internally (see SPEC_FULL.md §7); this helper exists for callers that
// want one around those suspension points.
package retry

import (
	"context"
	"time"

	"github.com/icryptix/core/internal/ulogger"
)

// Config controls one Retry call. A zero Config is not usable directly;
// build one with NewConfig so the suspension-point defaults below apply.
type Config struct {
	Attempt     string
	Backoff     time.Duration
	MaxAttempts int
	Unbounded   bool
	Exponential float64
	MaxBackoff  time.Duration
}

// Option mutates a Config built by NewConfig.
type Option func(*Config)

// NewConfig builds the default Config for a single suspended call: three
// attempts, one second apart, no backoff growth.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		Attempt:     "suspended call",
		Backoff:     time.Second,
		MaxAttempts: 3,
		MaxBackoff:  30 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithAttempt names the suspension point being retried, for the warn-level
// log line emitted on each failed attempt.
func WithAttempt(name string) Option {
	return func(c *Config) { c.Attempt = name }
}

// WithBackoff sets the initial delay between attempts.
func WithBackoff(d time.Duration) Option {
	return func(c *Config) { c.Backoff = d }
}

// WithMaxAttempts caps the number of attempts (ignored if WithUnbounded is
// also set).
func WithMaxAttempts(n int) Option {
	return func(c *Config) { c.MaxAttempts = n }
}

// WithUnbounded retries until ctx is cancelled instead of stopping at
// MaxAttempts.
func WithUnbounded() Option {
	return func(c *Config) { c.Unbounded = true }
}

// WithExponential grows the backoff by factor after each failed attempt, up
// to MaxBackoff (set via WithMaxBackoff).
func WithExponential(factor float64) Option {
	return func(c *Config) { c.Exponential = factor }
}

// WithMaxBackoff caps the delay an exponential backoff can grow to.
func WithMaxBackoff(d time.Duration) Option {
	return func(c *Config) { c.MaxBackoff = d }
}

// Retry calls fn until it succeeds, ctx is cancelled, or the attempt budget
// is exhausted, logging each failed attempt at warn level through logger.
func Retry[T any](ctx context.Context, logger ulogger.Logger, fn func() (T, error), opts ...Option) (T, error) {
	c := NewConfig(opts...)

	backoff := c.Backoff

	var (
		result T
		err    error
	)

	for attempt := 0; c.Unbounded || attempt < c.MaxAttempts; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}

		logger.Warnf("%s: attempt %d failed: %v", c.Attempt, attempt+1, err)

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(backoff):
		}

		if c.Exponential > 0 {
			backoff = time.Duration(float64(backoff) * c.Exponential)
			if backoff > c.MaxBackoff {
				backoff = c.MaxBackoff
			}
		}
	}

	return result, err
}
