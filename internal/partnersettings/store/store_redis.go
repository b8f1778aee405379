package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"checkout/internal/pidl/feature"
)

const partnerSettingsKeyPrefix = "partner_settings:"

// RedisStore keeps one JSON-encoded feature table per partner key.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Find(ctx context.Context, partner string) (feature.PartnerConfig, error) {
	raw, err := s.client.Get(ctx, partnerSettingsKeyPrefix+normalizePartner(partner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find partner settings: %w", err)
	}
	var cfg feature.PartnerConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode partner settings: %w", err)
	}
	return cfg, nil
}

func (s *RedisStore) Save(ctx context.Context, partner string, cfg feature.PartnerConfig) error {
	partner = normalizePartner(partner)
	if err := validate(partner, cfg); err != nil {
		return err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode partner settings: %w", err)
	}
	if err := s.client.Set(ctx, partnerSettingsKeyPrefix+partner, raw, 0).Err(); err != nil {
		return fmt.Errorf("save partner settings: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, partner string) error {
	if err := s.client.Del(ctx, partnerSettingsKeyPrefix+normalizePartner(partner)).Err(); err != nil {
		return fmt.Errorf("delete partner settings: %w", err)
	}
	return nil
}
