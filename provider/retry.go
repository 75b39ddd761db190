package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	DefaultRetryNum      = 2
	DefaultRetryDuration = time.Second
)

// RetryPolicy is the fixed-delay retry applied at the fetch boundary of
// every source request. It is injected so tests can run with a near-zero
// delay
type RetryPolicy struct {
	// RetryNum is the number of repeated attempts after the first failure
	RetryNum uint64
	// RetryDuration is the fixed pause between attempts
	RetryDuration time.Duration
}

// DefaultRetryPolicy mirrors the provider etiquette of the download tooling:
// three attempts in total, one second apart
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{RetryNum: DefaultRetryNum, RetryDuration: DefaultRetryDuration}
}

// Do runs fn under the policy with constant backoff. fn failures must be
// marked with retry.RetryableError to be repeated
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	d := p.RetryDuration
	if d <= 0 {
		d = time.Nanosecond
	}

	b, err := retry.NewConstant(d)
	if err != nil {
		return fmt.Errorf("retry backoff: %w", err)
	}

	b = retry.WithMaxRetries(p.RetryNum, b)

	return retry.Do(ctx, b, fn)
}
