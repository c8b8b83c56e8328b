package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix namespaces all cache keys in Redis to avoid collisions.
const defaultKeyPrefix = "toshosubs:"

func init() {
	Register(ProviderRedis, newRedisCache)
}

// redisCache shares cached pages between runs and machines through Redis/Valkey.
//
// Every page is a plain string key ({prefix}page:{url}) expiring on its own through PX,
// so any Redis 6+ or Valkey server works. A sorted set ({prefix}lru, score = last access
// in µs) bounds the number of pages; Lua scripts keep reads and writes atomic.
type redisCache struct {
	client     *redis.Client
	ttl        time.Duration
	maxSize    int
	onEvict    EvictCallback
	logger     Logger
	pagePrefix string // e.g. "toshosubs:page:"
	lruKey     string // e.g. "toshosubs:lru"
}

// getAndTouch returns a page and refreshes its LRU score. Members whose page
// already expired are dropped from the LRU set.
//
// KEYS[1] = LRU sorted set
// ARGV[1] = page key prefix, ARGV[2] = member, ARGV[3] = current µs timestamp
var getAndTouch = redis.NewScript(`
local val = redis.call('GET', ARGV[1] .. ARGV[2])
if val then
    redis.call('ZADD', KEYS[1], ARGV[3], ARGV[2])
else
    redis.call('ZREM', KEYS[1], ARGV[2])
end
return val
`)

// setAndEvict stores a page with its TTL, records the access and evicts the least
// recently used pages while the set exceeds maxSize.
//
// KEYS[1] = LRU sorted set
// ARGV[1] = page key prefix, ARGV[2] = member, ARGV[3] = value,
// ARGV[4] = current µs timestamp, ARGV[5] = TTL in milliseconds, ARGV[6] = maxSize
//
// Returns the evicted members (may be empty).
var setAndEvict = redis.NewScript(`
local prefix  = ARGV[1]
local member  = ARGV[2]
local maxSize = tonumber(ARGV[6])

redis.call('SET', prefix .. member, ARGV[3], 'PX', ARGV[5])
redis.call('ZADD', KEYS[1], ARGV[4], member)

local size = redis.call('ZCARD', KEYS[1])
local evicted = {}
while size > maxSize do
    local oldest = redis.call('ZPOPMIN', KEYS[1], 1)
    if #oldest == 0 then break end
    redis.call('DEL', prefix .. oldest[1])
    table.insert(evicted, oldest[1])
    size = size - 1
end

return evicted
`)

func newRedisCache(opts Options) (Cache, error) {
	if opts.Redis.Address == "" {
		return nil, errors.New("redis address is not configured")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Redis.Address,
		Password: opts.Redis.Password,
		DB:       opts.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisCache{
		client:     client,
		ttl:        opts.TTL,
		maxSize:    opts.Capacity,
		onEvict:    opts.OnEvict,
		logger:     opts.Logger,
		pagePrefix: defaultKeyPrefix + "page:",
		lruKey:     defaultKeyPrefix + "lru",
	}, nil
}

func (r *redisCache) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisCache) Get(pageURL string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	now := strconv.FormatInt(time.Now().UnixMicro(), 10)
	result, err := getAndTouch.Run(ctx, r.client, []string{r.lruKey}, r.pagePrefix, pageURL, now).Text()
	if err != nil {
		// redis.Nil is a plain miss
		if !errors.Is(err, redis.Nil) {
			r.logError("redis cache Get failed", err)
		}
		return nil, false
	}
	return []byte(result), true
}

func (r *redisCache) Set(pageURL string, body []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	now := strconv.FormatInt(time.Now().UnixMicro(), 10)
	ttlMs := strconv.FormatInt(r.ttl.Milliseconds(), 10)

	evicted, err := setAndEvict.Run(ctx, r.client, []string{r.lruKey},
		r.pagePrefix, pageURL, body, now, ttlMs, strconv.Itoa(r.maxSize),
	).StringSlice()
	if err != nil {
		r.logError("redis cache Set failed", err)
		return
	}

	if r.onEvict != nil {
		// Evicted values are not fetched back, only keys are reported
		for _, evictedURL := range evicted {
			r.onEvict(evictedURL, nil)
		}
	}
}

func (r *redisCache) Contains(pageURL string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := r.client.Exists(ctx, r.pagePrefix+pageURL).Result()
	if err != nil {
		r.logError("redis cache Contains failed", err)
		return false
	}
	return n == 1
}

// Len reports the size of the LRU set. Pages that expired but were not read since
// are still counted until the next eviction or lookup drops them.
func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := r.client.ZCard(ctx, r.lruKey).Result()
	if err != nil {
		r.logError("redis cache Len failed", err)
		return 0
	}
	return int(n)
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
