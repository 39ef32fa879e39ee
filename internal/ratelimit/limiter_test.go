package ratelimit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderdesk/tenderdesk/internal/domain"
)

func TestKeyedAllow(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	k := NewKeyed(PerHour(60), 2)
	k.now = func() time.Time { return now }
	k.lastCleanup = now

	require.NoError(t, k.Allow("alice"))
	require.NoError(t, k.Allow("alice"))

	err := k.Allow("alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRateLimited))

	var rl *domain.RateLimitError
	require.True(t, errors.As(err, &rl))
	assert.Greater(t, rl.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, rl.RetryAfter, 2*time.Minute)

	// Other keys have their own bucket.
	assert.NoError(t, k.Allow("bob"))

	// A refused call does not consume a token.
	now = now.Add(time.Minute)
	assert.NoError(t, k.Allow("alice"))
}

func TestKeyedCleanup(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	k := NewKeyed(PerHour(1), 1)
	k.now = func() time.Time { return now }
	k.lastCleanup = now

	require.NoError(t, k.Allow("alice"))
	require.Error(t, k.Allow("alice"))

	now = now.Add(61 * time.Minute)
	assert.NoError(t, k.Allow("alice"))
	assert.Len(t, k.limiters, 1)
}

func TestPerMinute(t *testing.T) {
	assert.InDelta(t, 0.5, float64(PerMinute(30)), 0.0001)
	assert.InDelta(t, 1.0/3600, float64(PerHour(0)), 0.0001)
}
