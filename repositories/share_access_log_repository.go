package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Viniciustertuliano/photovault/logger"
	"github.com/Viniciustertuliano/photovault/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisShareAccessLogRepository keeps the newest accesses of each share link in a
// capped Redis list.
type RedisShareAccessLogRepository struct {
	redis         *redis.Client
	size          int
	expireSeconds int
}

func NewRedisShareAccessLogRepository(redisClient *redis.Client, size int, expireSeconds int) *RedisShareAccessLogRepository {
	if size <= 0 {
		size = 50
	}
	return &RedisShareAccessLogRepository{redis: redisClient, size: size, expireSeconds: expireSeconds}
}

func shareAccessKey(shareLinkID uint) string {
	return fmt.Sprintf("share:%d:accesses", shareLinkID)
}

func (r *RedisShareAccessLogRepository) Append(ctx context.Context, entry models.ShareAccess) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode share access: %w", err)
	}

	key := shareAccessKey(entry.ShareLinkID)
	if err := r.redis.LPush(ctx, key, string(payload)).Err(); err != nil {
		return err
	}
	if err := r.redis.LTrim(ctx, key, 0, int64(r.size-1)).Err(); err != nil {
		return err
	}
	if r.expireSeconds > 0 {
		return r.redis.Expire(ctx, key, timeDurationSeconds(r.expireSeconds)).Err()
	}
	return nil
}

func (r *RedisShareAccessLogRepository) Recent(ctx context.Context, shareLinkID uint, limit int) ([]models.ShareAccess, error) {
	if limit <= 0 || limit > r.size {
		limit = r.size
	}

	key := shareAccessKey(shareLinkID)
	raw, err := r.redis.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.ShareAccess, 0, len(raw))
	for _, item := range raw {
		var entry models.ShareAccess
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			logger.Warn("skipping undecodable share access entry", zap.String("key", key), zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *RedisShareAccessLogRepository) Clear(ctx context.Context, shareLinkID uint) error {
	return r.redis.Del(ctx, shareAccessKey(shareLinkID)).Err()
}

// NoopShareAccessLogRepository is used when Redis is disabled.
type NoopShareAccessLogRepository struct{}

func (NoopShareAccessLogRepository) Append(context.Context, models.ShareAccess) error { return nil }

func (NoopShareAccessLogRepository) Recent(context.Context, uint, int) ([]models.ShareAccess, error) {
	return []models.ShareAccess{}, nil
}

func (NoopShareAccessLogRepository) Clear(context.Context, uint) error { return nil }

func timeDurationSeconds(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
