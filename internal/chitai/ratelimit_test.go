package chitai_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/chitai-gorod-qa/internal/chitai"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		quota   int64
		calls   int
		wantErr bool
	}{
		{
			name:  "allows calls within rate",
			rate:  100,
			burst: 10,
			quota: 500,
			calls: 3,
		},
		{
			name:  "allows burst",
			rate:  100,
			burst: 5,
			quota: 500,
			calls: 5,
		},
		{
			name:    "rejects the call past the quota",
			rate:    100,
			burst:   10,
			quota:   2,
			calls:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := chitai.NewRateLimiter(tt.rate, tt.burst, tt.quota, time.Hour)

			var lastErr error
			for range tt.calls {
				lastErr = rl.Wait(context.Background())
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.ErrorIs(t, lastErr, chitai.ErrQuotaExhausted)
			} else {
				require.NoError(t, lastErr)
			}
		})
	}
}

func TestRateLimiter_Counts(t *testing.T) {
	t.Parallel()

	rl := chitai.NewRateLimiter(100, 10, 5, time.Hour)

	assert.Equal(t, int64(0), rl.Used())
	assert.Equal(t, int64(5), rl.Remaining())

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))

	assert.Equal(t, int64(2), rl.Used())
	assert.Equal(t, int64(3), rl.Remaining())
}

func TestRateLimiter_WindowReset(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	currentTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rl := chitai.NewRateLimiter(
		100, 10, 2, time.Hour,
		chitai.WithRateLimiterNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return currentTime
		}),
	)

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	require.ErrorIs(t, rl.Wait(context.Background()), chitai.ErrQuotaExhausted)

	mu.Lock()
	currentTime = currentTime.Add(61 * time.Minute)
	mu.Unlock()

	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.Used())
	assert.Equal(t, currentTime.Add(time.Hour), rl.ResetAt())
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	t.Parallel()

	rl := chitai.NewRateLimiter(0.1, 1, 500, time.Hour)

	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")
	assert.Equal(t, int64(1), rl.Used(), "failed wait must not consume quota")
}

func TestRateLimiter_ConcurrentQuota(t *testing.T) {
	t.Parallel()

	const callers = 50
	rl := chitai.NewRateLimiter(200, 1, 3, time.Hour)

	var (
		wg        sync.WaitGroup
		ok        atomic.Int64
		exhausted atomic.Int64
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := rl.Wait(context.Background())
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, chitai.ErrQuotaExhausted):
				exhausted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(3), ok.Load())
	assert.Equal(t, int64(callers-3), exhausted.Load())
	assert.Equal(t, int64(3), rl.Used())
	assert.Equal(t, int64(0), rl.Remaining())
}
