package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "rtwgate/pkg/domain"
	"rtwgate/pkg/platform/sentinel"
)

const redisKeyPrefix = "rtw:verification:"

// RedisOutcomeStore keeps outcomes as JSON values with a native Redis TTL.
type RedisOutcomeStore struct {
	client *redis.Client
}

func NewRedisOutcomeStore(client *redis.Client) *RedisOutcomeStore {
	return &RedisOutcomeStore{client: client}
}

func redisKey(tenantID id.TenantID, verificationID id.VerificationID) string {
	return redisKeyPrefix + tenantID.String() + ":" + verificationID.String()
}

func (s *RedisOutcomeStore) Save(ctx context.Context, rec Record, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode verification record: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(rec.TenantID, rec.Outcome.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save verification record: %w", err)
	}
	return nil
}

func (s *RedisOutcomeStore) Find(ctx context.Context, tenantID id.TenantID, verificationID id.VerificationID) (*Record, error) {
	payload, err := s.client.Get(ctx, redisKey(tenantID, verificationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find verification record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode verification record: %w", err)
	}
	return &rec, nil
}
