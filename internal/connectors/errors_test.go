package connectors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPError_Unwrap(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"server fault", 500, ErrServiceUnavailable},
		{"bad gateway", 502, ErrServiceUnavailable},
		{"throttled", 429, ErrRateLimited},
		{"bad request", 400, ErrInvalidParameter},
		{"not found", 404, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewHTTPError(tt.status, "boom", "https://example.com/wfs")
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestHTTPError_Message(t *testing.T) {
	err := NewHTTPError(503, "maintenance", "https://gdi.berlin.de/services/wfs/alkis_gebaeude")
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "maintenance")
	assert.Contains(t, err.Error(), "alkis_gebaeude")
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server fault", NewHTTPError(500, "", ""), true},
		{"throttled", NewHTTPError(429, "", ""), true},
		{"bad request", NewHTTPError(400, "", ""), false},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
		{"plain error", errors.New("parse failure"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, 2*time.Second, Backoff(1))
	assert.Equal(t, 4*time.Second, Backoff(2))
	assert.Equal(t, 8*time.Second, Backoff(3))
	assert.Equal(t, 10*time.Second, Backoff(4))
}

func TestRetry_NonRetryableFailsFast(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), "test", func(ctx context.Context) error {
		calls++
		return NewHTTPError(400, "bad filter", "")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, 1, calls)
}

func TestRetry_SucceedsImmediately(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), "test", func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_CanceledContextStopsWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := Retry(ctx, "test", func(ctx context.Context) error {
		calls++
		return NewHTTPError(500, "", "")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
