// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"fmt"
	"time"
)

// clock abstracts time for retry backoff; satisfied by testutil.FakeClock.
type clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// realClock is the production clock.
type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// retryWithBackoff retries op up to maxAttempts times with exponential
// backoff, checking ctx between attempts so cancellation is respected
// while waiting.
//
// op returns (shouldRetry bool, err error). If shouldRetry is false, err
// is returned immediately (nil on success, non-nil on permanent failure).
// On exhaustion, the last error is returned.
func retryWithBackoff(
	ctx context.Context,
	clk clock,
	maxAttempts int,
	baseBackoff time.Duration,
	op func(attempt int) (retry bool, err error),
) error {
	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 && baseBackoff > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry aborted: %w", ctx.Err())
			case <-clk.After(baseBackoff * time.Duration(1<<(attempt-1))):
			}
		} else if attempt > 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("retry aborted: %w", err)
			}
		}

		retry, err := op(attempt)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return lastErr
}
