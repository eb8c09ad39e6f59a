package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"ecommerce_api/internal/domain/entities"
	"ecommerce_api/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const defaultProductTTL = 5 * time.Minute

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[1].
// A missing generation key counts as "0".
var setIfGeneration = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// evictAndBump drops the entry and advances its generation in one step.
var evictAndBump = redis.NewScript(`
redis.call('DEL', KEYS[1])
redis.call('INCR', KEYS[2])
redis.call('PEXPIRE', KEYS[2], ARGV[1])
return 1
`)

// ProductRedisCache caches products by id. A miss is reported as (zero, false, nil).
//
// Every eviction bumps a per-id generation. Set only writes when the
// generation still matches the one read before the store lookup, so a read
// that raced an update cannot put the older row back.
type ProductRedisCache struct {
	client  redis.Cmdable
	baseTTL time.Duration
}

var _ interfaces.IProductCache = (*ProductRedisCache)(nil)

func NewProductRedisCache(client redis.Cmdable, baseTTL time.Duration) *ProductRedisCache {
	if baseTTL <= 0 {
		baseTTL = defaultProductTTL
	}
	return &ProductRedisCache{client: client, baseTTL: baseTTL}
}

func (c *ProductRedisCache) Get(ctx context.Context, id string) (entities.Product, bool, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.Product{}, false, nil
	}
	if err != nil {
		return entities.Product{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var p entities.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return entities.Product{}, false, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return p, true, nil
}

func (c *ProductRedisCache) Generation(ctx context.Context, id string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

func (c *ProductRedisCache) Set(ctx context.Context, p entities.Product, generation int64) (bool, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("marshal product failed: %w", err)
	}

	// Jitter keeps entries written together from expiring together.
	jitter := time.Duration(rand.Int63n(int64(c.baseTTL)/5 + 1))
	ttl := c.baseTTL + jitter

	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{productKey(p.ID), generationKey(p.ID)},
		strconv.FormatInt(generation, 10), data, ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("redis set failed: %w", err)
	}
	return stored == 1, nil
}

func (c *ProductRedisCache) Delete(ctx context.Context, id string) error {
	// The generation outlives any entry written under the previous one.
	genTTL := 2 * c.baseTTL
	err := evictAndBump.Run(ctx, c.client,
		[]string{productKey(id), generationKey(id)},
		genTTL.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func generationKey(id string) string {
	return fmt.Sprintf("product:%s:gen", id)
}
