package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"tillfront/internal/model"
)

const (
	productKeyPrefix = "product:"
	allProductIDsKey = "all_product_ids"
	productTTL       = 5 * time.Minute
)

// RedisCache shares one catalog snapshot across terminals. Keys follow
// the product:<id> / all_product_ids scheme so several front ends can
// read the same snapshot.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{client: client, ctx: ctx}, nil
}

func (c *RedisCache) Close() error { return c.client.Close() }

// ReplaceAll rewrites every product key and the id set in one pipeline.
func (c *RedisCache) ReplaceAll(products []model.Product) error {
	pipe := c.client.Pipeline()
	ids := make([]interface{}, 0, len(products))
	for _, p := range products {
		b, err := json.Marshal(p)
		if err != nil {
			log.Printf("catalog: marshal product %s: %v", p.ID, err)
			continue
		}
		pipe.Set(c.ctx, productKeyPrefix+p.ID, b, productTTL)
		ids = append(ids, p.ID)
	}
	pipe.Del(c.ctx, allProductIDsKey)
	if len(ids) > 0 {
		pipe.SAdd(c.ctx, allProductIDsKey, ids...)
	}
	if _, err := pipe.Exec(c.ctx); err != nil {
		return fmt.Errorf("redis pipeline: %w", err)
	}
	return nil
}

func (c *RedisCache) Get(id string) (model.Product, bool) {
	v, err := c.client.Get(c.ctx, productKeyPrefix+id).Result()
	if err != nil {
		return model.Product{}, false
	}
	var p model.Product
	if err := json.Unmarshal([]byte(v), &p); err != nil {
		log.Printf("catalog: unmarshal product %s: %v", id, err)
		return model.Product{}, false
	}
	return p, true
}

func (c *RedisCache) All() ([]model.Product, error) {
	ids, err := c.client.SMembers(c.ctx, allProductIDsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis smembers: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKeyPrefix + id
	}
	vals, err := c.client.MGet(c.ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}
	var out []model.Product
	for _, v := range vals {
		if v == nil {
			// key expired or evicted between SMembers and MGet
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		var p model.Product
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			log.Printf("catalog: unmarshal cached product: %v", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *RedisCache) Len() int {
	n, err := c.client.SCard(c.ctx, allProductIDsKey).Result()
	if err != nil {
		return 0
	}
	return int(n)
}
