package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimitStore is a fixed-window request counter shared by every API
// instance pointing at the same Redis. Key format:
// ratelimit:<identifier>:<window start unix>
type RateLimitStore struct {
	client *redis.Client
	limit  int64
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

func NewRateLimitStore(client *redis.Client, limit int, window time.Duration, log zerolog.Logger) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		limit:  int64(limit),
		window: window,
		log:    log,
		now:    time.Now,
	}
}

// Allow counts one request for identifier and reports whether it fits in the
// current window. Redis failures let the request through and are logged.
func (s *RateLimitStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	key := s.key(identifier)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.window)
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Str("identifier", identifier).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return incr.Val() <= s.limit, nil
}

func (s *RateLimitStore) key(identifier string) string {
	start := s.now().Truncate(s.window).Unix()
	return fmt.Sprintf("ratelimit:%s:%d", identifier, start)
}
