package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotwise/booking/internal/application/services"
)

func TestUserAppointmentsPrefix(t *testing.T) {
	assert.Equal(t, "user:U1:appointments", services.UserAppointmentsPrefix("U1"))
}

func TestCacheInvalidationService_InvalidateUserAppointments(t *testing.T) {
	t.Run("deletes every key under the user's listing prefix", func(t *testing.T) {
		cache := NewRecordingCacheProvider()
		require.NoError(t, cache.Set(context.Background(), "user:U1:appointments:page=1", []byte("a"), 60))
		require.NoError(t, cache.Set(context.Background(), "user:U1:appointments:page=2", []byte("b"), 60))
		require.NoError(t, cache.Set(context.Background(), "user:U2:appointments:page=1", []byte("c"), 60))

		service := services.NewCacheInvalidationService(cache)
		service.InvalidateUserAppointments(context.Background(), "U1")

		assert.Equal(t, []string{"user:U1:appointments*"}, cache.DeletedPatterns())

		gone, err := cache.Exists(context.Background(), "user:U1:appointments:page=1")
		require.NoError(t, err)
		assert.False(t, gone)

		kept, err := cache.Exists(context.Background(), "user:U2:appointments:page=1")
		require.NoError(t, err)
		assert.True(t, kept)
	})

	t.Run("swallows cache failures", func(t *testing.T) {
		cache := NewRecordingCacheProvider()
		cache.deleteErr = errors.New("redis down")

		service := services.NewCacheInvalidationService(cache)

		// Must not panic or propagate; staleness self-heals via TTL.
		service.InvalidateUserAppointments(context.Background(), "U1")
	})
}

func TestCacheInvalidationService_InvalidatePrefix(t *testing.T) {
	t.Run("propagates failures to callers that want them", func(t *testing.T) {
		cache := NewRecordingCacheProvider()
		cache.deleteErr = errors.New("redis down")

		service := services.NewCacheInvalidationService(cache)
		err := service.InvalidatePrefix(context.Background(), "user:U1:appointments")

		assert.Error(t, err)
	})

	t.Run("tolerates a nil cache", func(t *testing.T) {
		service := services.NewCacheInvalidationService(nil)
		assert.NoError(t, service.InvalidatePrefix(context.Background(), "user:U1:appointments"))
	})
}
