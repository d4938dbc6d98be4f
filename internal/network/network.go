// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package network contains the rate limiting and retry helpers used for the
// Discord REST API calls.
package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/trace"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// defNumAttempts is the default number of retry attempts.
const defNumAttempts = 3

var (
	// maxAllowedWaitTime is the maximum time to wait for a transient error.
	maxAllowedWaitTime = 2 * time.Minute
	lg                 = slog.Default()
	// waitFn returns the amount of time to wait before retrying depending on
	// the current attempt.  This variable exists to reduce the test time.
	waitFn    = cubicWait
	netWaitFn = expWait

	mu sync.RWMutex
)

// ErrRetryFailed is returned if number of retry attempts exceeded the retry
// attempts limit and function wasn't able to complete without errors.
var ErrRetryFailed = errors.New("callback was unable to complete without errors within the allowed number of retries")

// WithRetry will run the callback function fn.  If the function returns a
// transient error (server side 5xx, request timeout, or a network read/write
// error), it will delay, and then call it again up to maxAttempts times.  Rate
// limit responses are handled by the discordgo session itself and never
// reach this function.  Any other error is returned immediately.
func WithRetry(ctx context.Context, lim *rate.Limiter, maxAttempts int, fn func() error) error {
	if maxAttempts <= 0 {
		maxAttempts = defNumAttempts
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var err error
		trace.WithRegion(ctx, "WithRetry.wait", func() {
			err = lim.Wait(ctx)
		})
		if err != nil {
			return err
		}

		cbErr := fn()
		if cbErr == nil {
			return nil
		}

		tracelogf(ctx, "error", "WithRetry: %[1]s (%[1]T) after %[2]d attempts", cbErr, attempt+1)
		var (
			re *discordgo.RESTError
			ne *net.OpError
		)
		var delay time.Duration
		switch {
		case errors.As(cbErr, &re) && re.Response != nil && isRecoverable(re.Response.StatusCode):
			delay = waitFn(attempt)
			tracelogf(ctx, "info", "got server error %d, sleeping %s", re.Response.StatusCode, delay)
		case errors.As(cbErr, &ne) && (ne.Op == "read" || ne.Op == "write"):
			delay = netWaitFn(attempt)
			tracelogf(ctx, "info", "got network error %s, sleeping %s", ne.Op, delay)
		default:
			return fmt.Errorf("callback error: %w", cbErr)
		}
		if err := sleepCtx(ctx, delay); err != nil {
			return err
		}
	}
	return ErrRetryFailed
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-t.C:
		return nil
	}
}

// isRecoverable returns true if the status code is a recoverable error.
func isRecoverable(statusCode int) bool {
	return (statusCode >= http.StatusInternalServerError && statusCode <= 599 && statusCode != http.StatusNotImplemented) || statusCode == http.StatusRequestTimeout
}

// cubicWait is the wait time function.  Time is calculated as (x+2)^3 seconds,
// where x is the current attempt number. The maximum wait time is capped at
// maxAllowedWaitTime.
func cubicWait(attempt int) time.Duration {
	x := attempt + 2 // this is to ensure that we sleep at least 8 seconds.
	delay := time.Duration(x*x*x) * time.Second
	return min(delay, maxWait())
}

func expWait(attempt int) time.Duration {
	delay := time.Duration(2<<uint(attempt)) * time.Second
	return min(delay, maxWait())
}

func maxWait() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return maxAllowedWaitTime
}

func tracelogf(ctx context.Context, category string, format string, a ...any) {
	mu.RLock()
	defer mu.RUnlock()

	trace.Logf(ctx, category, format, a...)
	lg.DebugContext(ctx, fmt.Sprintf(format, a...))
}

// SetLogger sets the package logger.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = slog.Default()
	}
	lg = l
}

// SetMaxAllowedWaitTime sets the maximum time to wait for a transient error.
func SetMaxAllowedWaitTime(d time.Duration) {
	mu.Lock()
	defer mu.Unlock()

	maxAllowedWaitTime = d
}
