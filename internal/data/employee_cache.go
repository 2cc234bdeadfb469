package data

import (
	"context"
	"encoding/json"
	"time"

	"go-workforce/internal/conf"
	"go-workforce/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

const (
	employeeCachePrefix = "employee:"
	employeeCacheTTL    = 10 * time.Minute
)

// EmployeeCache defines the interface for employee caching operations.
// Implementations handle cache misses gracefully by returning nil, nil.
type EmployeeCache interface {
	// Get retrieves an employee from cache by ID.
	// Returns nil, nil on a cache miss.
	Get(ctx context.Context, id string) (*domain.Employee, error)

	// Set stores an employee in the cache.
	Set(ctx context.Context, e *domain.Employee) error

	// Invalidate removes an employee from the cache.
	Invalidate(ctx context.Context, id string) error
}

// Compile-time interface checks
var (
	_ EmployeeCache = (*RedisEmployeeCache)(nil)
	_ EmployeeCache = (*noopEmployeeCache)(nil)
)

// NewRedisClient creates a redis client from config, or nil when redis is
// not configured.
func NewRedisClient(c *conf.Data) *redis.Client {
	if c == nil || c.Redis == nil || c.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})
}

// RedisEmployeeCache implements EmployeeCache using Redis.
type RedisEmployeeCache struct {
	rdb *redis.Client
	log *log.Helper
}

// NewEmployeeCache creates a Redis-based employee cache, or a no-op cache
// when the redis client is nil.
func NewEmployeeCache(rdb *redis.Client, logger log.Logger) EmployeeCache {
	if rdb == nil {
		return &noopEmployeeCache{}
	}
	return &RedisEmployeeCache{
		rdb: rdb,
		log: log.NewHelper(logger),
	}
}

// cachedEmployee is the serialization format for cached employees.
type cachedEmployee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	Salary     int64     `json:"salary"`
	HiredAt    time.Time `json:"hired_at"`
	Terminated bool      `json:"terminated"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (c *RedisEmployeeCache) cacheKey(id string) string {
	return employeeCachePrefix + id
}

// Get retrieves an employee from Redis cache.
func (c *RedisEmployeeCache) Get(ctx context.Context, id string) (*domain.Employee, error) {
	data, err := c.rdb.Get(ctx, c.cacheKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		c.log.WithContext(ctx).Warnf("failed to get employee from cache: %v", err)
		return nil, nil // Treat errors as cache miss
	}

	var ce cachedEmployee
	if err := json.Unmarshal(data, &ce); err != nil {
		c.log.WithContext(ctx).Warnf("failed to unmarshal cached employee: %v", err)
		return nil, nil
	}

	return domain.ReconstructEmployee(
		ce.ID, ce.Name, ce.Position, ce.Salary, ce.HiredAt, ce.Terminated, ce.UpdatedAt,
	), nil
}

// Set stores an employee in Redis.
func (c *RedisEmployeeCache) Set(ctx context.Context, e *domain.Employee) error {
	ce := cachedEmployee{
		ID:         e.ID(),
		Name:       e.Name(),
		Position:   e.Position(),
		Salary:     e.Salary(),
		HiredAt:    e.HiredAt(),
		Terminated: e.Terminated(),
		UpdatedAt:  e.UpdatedAt(),
	}

	data, err := json.Marshal(ce)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, c.cacheKey(e.ID()), data, employeeCacheTTL).Err()
}

// Invalidate removes an employee from Redis.
func (c *RedisEmployeeCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, c.cacheKey(id)).Err()
}

// noopEmployeeCache is used when redis is not configured.
type noopEmployeeCache struct{}

func (c *noopEmployeeCache) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return nil, nil
}

func (c *noopEmployeeCache) Set(ctx context.Context, e *domain.Employee) error {
	return nil
}

func (c *noopEmployeeCache) Invalidate(ctx context.Context, id string) error {
	return nil
}
