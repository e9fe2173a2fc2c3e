package trendyol_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/marketsync/internal/trendyol"
)

func TestRateLimiter_DailyQuota(t *testing.T) {
	t.Parallel()

	rl := trendyol.NewRateLimiter(1000, 10, 3)

	for range 3 {
		require.NoError(t, rl.Wait(t.Context()))
	}

	assert.EqualValues(t, 3, rl.Used())
	assert.EqualValues(t, 0, rl.Remaining())

	err := rl.Wait(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, trendyol.ErrDailyQuotaExhausted)
}

func TestRateLimiter_WindowRolls(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	rl := trendyol.NewRateLimiter(1000, 10, 2,
		trendyol.WithRateLimiterNowFunc(func() time.Time { return now }),
	)

	require.NoError(t, rl.Wait(t.Context()))
	require.NoError(t, rl.Wait(t.Context()))
	require.ErrorIs(t, rl.Wait(t.Context()), trendyol.ErrDailyQuotaExhausted)

	// Quota stays exhausted inside the window.
	now = now.Add(23 * time.Hour)
	require.ErrorIs(t, rl.Wait(t.Context()), trendyol.ErrDailyQuotaExhausted)

	// A new window opens 24 hours after the old one.
	now = now.Add(2 * time.Hour)
	require.NoError(t, rl.Wait(t.Context()))
	assert.EqualValues(t, 1, rl.Used())
	assert.EqualValues(t, 1, rl.Remaining())
}

func TestRateLimiter_Remaining(t *testing.T) {
	t.Parallel()

	rl := trendyol.NewRateLimiter(1000, 10, 100)
	assert.EqualValues(t, 100, rl.Remaining())

	require.NoError(t, rl.Wait(t.Context()))
	assert.EqualValues(t, 99, rl.Remaining())
}
