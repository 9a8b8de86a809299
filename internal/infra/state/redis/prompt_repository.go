package redisstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	// 导入 Redis 客户端库
	"github.com/go-redis/redis/v8"

	"kindness-wall/internal/domain"
	"kindness-wall/internal/repository"
)

// RedisPromptRepository 是 PromptStateRepository 接口的 Redis 实现。
// 当前精选语录整体序列化为 JSON 存在单个 key 下，SET 是原子替换，
// 天然满足"单写多读、读取即快照"的要求。
type RedisPromptRepository struct {
	client *redis.Client
	// Redis key 的前缀，方便多环境共用一个实例时隔离
	keyPrefix string
}

// NewRedisPromptRepository 创建 RedisPromptRepository 实例
func NewRedisPromptRepository(client *redis.Client, keyPrefix string) *RedisPromptRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisPromptRepository")
	}
	if keyPrefix == "" {
		keyPrefix = "kw:" // 默认前缀 "kw:" (kindness-wall)
	}
	return &RedisPromptRepository{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisPromptRepository) currentPromptKey() string {
	return r.keyPrefix + "prompt:current"
}

// SetCurrent 整体替换当前精选语录 (不设置过期时间，下一次轮换会覆盖)
func (r *RedisPromptRepository) SetCurrent(ctx context.Context, prompt *domain.FeaturedPrompt) error {
	key := r.currentPromptKey()

	data, err := json.Marshal(prompt)
	if err != nil {
		return fmt.Errorf("redis: failed to marshal featured prompt: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis: failed to set current prompt at %s: %w", key, err)
	}
	return nil
}

// GetCurrent 返回当前精选语录的快照。
// key 不存在说明进程启动后还没有轮换过，映射为 ErrPromptNotSet。
func (r *RedisPromptRepository) GetCurrent(ctx context.Context) (*domain.FeaturedPrompt, error) {
	key := r.currentPromptKey()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrPromptNotSet
		}
		return nil, fmt.Errorf("redis: failed to get current prompt from %s: %w", key, err)
	}

	var prompt domain.FeaturedPrompt
	if err := json.Unmarshal(data, &prompt); err != nil {
		return nil, fmt.Errorf("redis: failed to unmarshal featured prompt: %w", err)
	}
	return &prompt, nil
}
