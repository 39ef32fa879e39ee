package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderdesk/tenderdesk/internal/domain"
)

type cachedProfile struct {
	Name string
	City string
}

func TestCacheService(t *testing.T) {
	ctx := context.Background()
	c := NewCacheService(CacheConfig{Size: 10, TTL: time.Minute})
	defer c.Close()

	require.NoError(t, c.Set(ctx, "kvk:12345678", cachedProfile{Name: "Acme", City: "Delft"}))

	var got cachedProfile
	require.NoError(t, c.Get(ctx, "kvk:12345678", &got))
	assert.Equal(t, "Acme", got.Name)

	require.NoError(t, c.Delete(ctx, "kvk:12345678"))
	assert.ErrorIs(t, c.Get(ctx, "kvk:12345678", &got), domain.ErrNotFound)

	assert.ErrorIs(t, c.Set(ctx, "", got), domain.ErrInvalidInput)
}

func TestCacheGetOrSet(t *testing.T) {
	ctx := context.Background()
	c := NewCacheService(CacheConfig{Size: 10, TTL: time.Minute})

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedProfile{Name: "Acme"}, nil
	}

	var first, second cachedProfile
	require.NoError(t, c.GetOrSet(ctx, "k", &first, fetch))
	require.NoError(t, c.GetOrSet(ctx, "k", &second, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	boom := errors.New("boom")
	err := c.GetOrSet(ctx, "other", &first, func() (interface{}, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}
