package repository

import (
	"context"
	"errors"

	repo "storefront/internal/repository"

	"github.com/redis/go-redis/v9"
)

// キーは storefront:<namespace>:<key>
const KeyPrefix = "storefront:"

// セッションのレコードをRedisの文字列で持つ（TTLなし）
type KVRedisRepository struct {
	client    *redis.Client
	namespace string
}

func NewKVRedisRepository(client *redis.Client, namespace string) *KVRedisRepository {
	return &KVRedisRepository{client: client, namespace: namespace}
}

func (r *KVRedisRepository) key(k string) string {
	return KeyPrefix + r.namespace + ":" + k
}

func (r *KVRedisRepository) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *KVRedisRepository) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// 無いキーのDELもエラーにしない
func (r *KVRedisRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}
