package rpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
)

// transientMarkers are lowercase substrings of provider errors worth another attempt.
var transientMarkers = []string{
	"timeout", "deadline exceeded",
	"429", "too many requests", "rate limit",
	"502", "503", "504", "bad gateway", "service unavailable",
	"connection pool", "no available connection",
	"websocket: close", "use of closed network connection", "eof",
}

// retryableError reports whether err looks transient.
func retryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// calculateBackoff returns the wait before attempt, with ±25% jitter. Attempt 1 never waits.
func calculateBackoff(attempt int, cfg *config.RetryConfig) time.Duration {
	if attempt <= 1 {
		return 0
	}

	backoff := float64(cfg.InitialBackoff.Duration) * math.Pow(cfg.BackoffMultiplier, float64(attempt-2))
	backoff = math.Min(backoff, float64(cfg.MaxBackoff.Duration))

	jitterRange := backoff * 0.25
	backoff += (rand.Float64() * 2 * jitterRange) - jitterRange //nolint:gosec

	return time.Duration(math.Max(backoff, 0))
}

// retryWithBackoff runs fn until it succeeds, fails with a non-transient error, or
// cfg.MaxAttempts is reached. A nil cfg runs fn exactly once.
func retryWithBackoff(ctx context.Context, cfg *config.RetryConfig, operation string, fn func() error) error {
	if cfg == nil {
		return fn()
	}

	var lastErr error
	startTime := time.Now()

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if wait := calculateBackoff(attempt, cfg); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during backoff (attempt %d/%d): %w",
					attempt, cfg.MaxAttempts, ctx.Err())
			}
			RPCRetryInc(operation)
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled before attempt %d: %w", attempt, err)
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryableError(err) {
			return fmt.Errorf("non-retryable error on attempt %d/%d: %w", attempt, cfg.MaxAttempts, err)
		}
	}

	return fmt.Errorf("all %d attempts failed after %v (last error: %w)",
		cfg.MaxAttempts, time.Since(startTime), lastErr)
}

// RetryForever runs fn until it succeeds or ctx is done, waiting a fixed interval
// between attempts and logging every failure. It returns ctx.Err() on cancellation.
func RetryForever(
	ctx context.Context,
	log *logger.Logger,
	interval time.Duration,
	operation string,
	fn func(ctx context.Context) error,
) error {
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Errorw("operation failed, retrying",
			"operation", operation, "attempt", attempt, "backoff", interval, "error", err)
		RPCRetryInc(operation)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
