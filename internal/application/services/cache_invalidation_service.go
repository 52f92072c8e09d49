package services

import (
	"context"
	"fmt"

	"github.com/slotwise/booking/internal/domain/providers"
	"github.com/slotwise/booking/internal/infrastructure/observability"
)

// UserAppointmentsPrefix returns the cache key prefix under which a
// user's appointment listings are stored.
func UserAppointmentsPrefix(userID string) string {
	return fmt.Sprintf("user:%s:appointments", userID)
}

// CacheInvalidationService evicts cached reads after writes
type CacheInvalidationService struct {
	cache providers.CacheProvider
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider) *CacheInvalidationService {
	return &CacheInvalidationService{cache: cache}
}

// InvalidateUserAppointments evicts every cached appointment listing for
// the user. Best effort: failures are logged and swallowed, staleness
// self-heals when the entries' TTL expires.
func (s *CacheInvalidationService) InvalidateUserAppointments(ctx context.Context, userID string) {
	prefix := UserAppointmentsPrefix(userID)
	if err := s.InvalidatePrefix(ctx, prefix); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Str("prefix", prefix).
			Err(err).
			Msg("failed to invalidate appointment listing cache")
	}
}

// InvalidatePrefix evicts every cache entry whose key starts with prefix
func (s *CacheInvalidationService) InvalidatePrefix(ctx context.Context, prefix string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeletePattern(ctx, prefix+"*")
}
