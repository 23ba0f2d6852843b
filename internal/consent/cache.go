package consent

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"otcwise-backend/internal/platform/logger"
)

const cacheTTL = 10 * time.Minute

// cachedStore is a read-through redis decorator over another Store.
// Writes delete the cached entry before hitting the inner store so a
// failed write can never leave a stale record behind.
type cachedStore struct {
	log   *logger.Logger
	inner Store
	rdb   *goredis.Client
}

func NewCachedStore(log *logger.Logger, inner Store, rdb *goredis.Client) Store {
	return &cachedStore{
		log:   log.With("store", "consent-cache"),
		inner: inner,
		rdb:   rdb,
	}
}

func cacheKey(userID uuid.UUID) string {
	return "consent:" + userID.String()
}

func (s *cachedStore) Get(ctx context.Context, userID uuid.UUID) (*Record, error) {
	data, err := s.rdb.Get(ctx, cacheKey(userID)).Bytes()
	if err == nil {
		var rec Record
		if err := json.Unmarshal(data, &rec); err == nil {
			return &rec, nil
		}
		// Unreadable entry; fall through to the inner store.
	} else if err != goredis.Nil {
		s.log.Warn("cache read failed", "error", err)
	}

	rec, err := s.inner.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := s.rdb.Set(ctx, cacheKey(userID), data, cacheTTL).Err(); err != nil {
			s.log.Warn("cache write failed", "error", err)
		}
	}
	return rec, nil
}

func (s *cachedStore) Put(ctx context.Context, rec *Record) error {
	if err := s.rdb.Del(ctx, cacheKey(rec.UserID)).Err(); err != nil {
		s.log.Warn("cache invalidation failed", "error", err)
	}
	return s.inner.Put(ctx, rec)
}
