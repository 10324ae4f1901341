package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisLedgerKeyPrefix = "issuance:ledger:"
	redisIssuedValue     = "issued"
	redisPendingPrefix   = "pending:"
)

// releaseScript deletes the key only while it still holds the caller's
// reservation, so a late release never drops someone else's claim.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis keeps reservations as expiring keys and issued markers as
// persistent keys, shared by every replica.
type Redis struct {
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Reserve(ctx context.Context, registration, token string, ttl time.Duration) error {
	key := ledgerKey(registration)
	ok, err := s.client.SetNX(ctx, key, redisPendingPrefix+token, ttl).Result()
	if err != nil {
		return fmt.Errorf("reserve issuance: %w", err)
	}
	if ok {
		return nil
	}

	current, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired between SETNX and GET; report as contended.
			return ErrReserved
		}
		return fmt.Errorf("read issuance ledger: %w", err)
	}
	if current == redisIssuedValue {
		return ErrIssued
	}
	return ErrReserved
}

func (s *Redis) Confirm(ctx context.Context, registration string) error {
	if err := s.client.Set(ctx, ledgerKey(registration), redisIssuedValue, 0).Err(); err != nil {
		return fmt.Errorf("confirm issuance: %w", err)
	}
	return nil
}

func (s *Redis) Release(ctx context.Context, registration, token string) error {
	if err := releaseScript.Run(ctx, s.client, []string{ledgerKey(registration)}, redisPendingPrefix+token).Err(); err != nil {
		return fmt.Errorf("release issuance: %w", err)
	}
	return nil
}

func (s *Redis) IsIssued(ctx context.Context, registration string) (bool, error) {
	current, err := s.client.Get(ctx, ledgerKey(registration)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("read issuance ledger: %w", err)
	}
	return current == redisIssuedValue, nil
}

func ledgerKey(registration string) string {
	return redisLedgerKeyPrefix + registration
}
