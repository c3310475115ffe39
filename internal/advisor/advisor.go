// Package advisor answers free-form career questions for job seekers and
// shortlists job seekers for recruiters. Both fall back to canned replies
// when no model is configured, and to an apology when the model fails.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrWrongRole = errors.New("feature not available for this role")

// DefaultMockDelay mimics model latency for canned replies.
const DefaultMockDelay = 1500 * time.Millisecond

const notSpecified = "Not specified"

type options struct {
	mockDelay time.Duration
	attempts  int
}

type Option func(*options)

func WithMockDelay(d time.Duration) Option {
	return func(o *options) { o.mockDelay = d }
}

// WithAttempts sets how many times a failed remote call is tried.
func WithAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.attempts = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{mockDelay: DefaultMockDelay, attempts: 2}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var err error
	for i := 0; i < attempts; i++ {
		var res T
		res, err = fn()
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return zero, err
		}
		if i < attempts-1 {
			if err := sleep(ctx, time.Duration(i+1)*200*time.Millisecond); err != nil {
				return zero, err
			}
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

func joinOrNotSpecified(items []string) string {
	return orNotSpecified(strings.Join(items, ", "))
}
