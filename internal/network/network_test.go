package network

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

const testRateLimit = 1000.0 // per second

func init() {
	waitFn = func(int) time.Duration { return time.Millisecond }
	netWaitFn = func(int) time.Duration { return time.Millisecond }
}

func restErr(code int) error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: code}}
}

// failFn returns errFirst for the first n calls, and then errAfter.
func failFn(n int, errFirst error, errAfter error) (func() error, *int) {
	calls := 0
	return func() error {
		calls++
		if calls <= n {
			return errFirst
		}
		return errAfter
	}, &calls
}

func TestWithRetry(t *testing.T) {
	t.Parallel()
	errGeneric := errors.New("it was at this moment he knew")
	tests := []struct {
		name        string
		maxAttempts int
		fnFails     int
		errFirst    error
		errAfter    error
		wantErr     error
		wantAnyErr  bool
		wantCalls   int
	}{
		{"no errors", 3, 0, nil, nil, nil, false, 1},
		{"generic error is not retried", 3, 1, errGeneric, nil, errGeneric, true, 1},
		{"server error, recovered", 3, 2, restErr(http.StatusBadGateway), nil, nil, false, 3},
		{"request timeout, recovered", 3, 1, restErr(http.StatusRequestTimeout), nil, nil, false, 2},
		{"not implemented is not retried", 3, 1, restErr(http.StatusNotImplemented), nil, nil, true, 1},
		{"client error is not retried", 3, 1, restErr(http.StatusForbidden), nil, nil, true, 1},
		{"network read error, recovered", 3, 1, &net.OpError{Op: "read", Err: errors.New("reset")}, nil, nil, false, 2},
		{"dial error is not retried", 3, 1, &net.OpError{Op: "dial", Err: errors.New("refused")}, nil, nil, true, 1},
		{"running out of retries", 3, 100, restErr(http.StatusInternalServerError), nil, ErrRetryFailed, true, 3},
		{"zero attempts uses default", 0, 100, restErr(http.StatusInternalServerError), nil, ErrRetryFailed, true, defNumAttempts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, calls := failFn(tt.fnFails, tt.errFirst, tt.errAfter)
			err := WithRetry(t.Context(), rate.NewLimiter(testRateLimit, 1), tt.maxAttempts, fn)
			if tt.wantAnyErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantCalls, *calls)
		})
	}
}

func TestWithRetry_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err := WithRetry(ctx, rate.NewLimiter(rate.Every(time.Hour), 0), 3, func() error { return nil })
	assert.Error(t, err)
}

func Test_cubicWait(t *testing.T) {
	SetMaxAllowedWaitTime(time.Minute)
	t.Cleanup(func() { SetMaxAllowedWaitTime(2 * time.Minute) })
	assert.Equal(t, 8*time.Second, cubicWait(0))
	assert.Equal(t, 27*time.Second, cubicWait(1))
	assert.Equal(t, time.Minute, cubicWait(10))
}

func Test_isRecoverable(t *testing.T) {
	assert.True(t, isRecoverable(http.StatusInternalServerError))
	assert.True(t, isRecoverable(http.StatusServiceUnavailable))
	assert.True(t, isRecoverable(http.StatusRequestTimeout))
	assert.False(t, isRecoverable(http.StatusNotImplemented))
	assert.False(t, isRecoverable(http.StatusNotFound))
	assert.False(t, isRecoverable(http.StatusOK))
}
