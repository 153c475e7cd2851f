package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hetulpatel/personjob/internal/models"
)

// RosterCache keeps the printed rows of each table so they can be shown
// without opening the database.
type RosterCache interface {
	Get(ctx context.Context, table string) ([]string, bool, error)
	Set(ctx context.Context, table string, lines []string) error
	Invalidate(ctx context.Context) error
	Close() error
}

type redisRosterCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisRosterCache builds a cache keyed by database path and table, so
// two databases never share entries.
func NewRedisRosterCache(addr, password string, db int, ttl time.Duration, dbPath string) (RosterCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisRosterCache{client: client, ttl: ttl, prefix: RosterPrefix(dbPath)}, nil
}

// RosterPrefix is the key prefix for one database file.
func RosterPrefix(dbPath string) string {
	return "personjob_roster:" + dbPath
}

func (c *redisRosterCache) key(table string) string {
	return fmt.Sprintf("%s:%s", c.prefix, table)
}

func (c *redisRosterCache) Get(ctx context.Context, table string) ([]string, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	val, err := c.client.Get(ctx, c.key(table)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var lines []string
	if err := json.Unmarshal(val, &lines); err != nil {
		return nil, false, fmt.Errorf("decode %s roster: %w", table, err)
	}
	return lines, true, nil
}

func (c *redisRosterCache) Set(ctx context.Context, table string, lines []string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if lines == nil {
		lines = []string{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode %s roster: %w", table, err)
	}
	return c.client.Set(ctx, c.key(table), payload, c.ttl).Err()
}

// Invalidate drops the cached rows of every table of this database.
func (c *redisRosterCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.keys()...).Err()
}

func (c *redisRosterCache) keys() []string {
	tables := []string{models.TablePerson, models.TableDepartment, models.TableJob}
	keys := make([]string, 0, len(tables))
	for _, table := range tables {
		keys = append(keys, c.key(table))
	}
	return keys
}

func (c *redisRosterCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ForgetRoster drops the cached rows of the database at dbPath. Maintenance
// commands call it after changing the tables.
func ForgetRoster(ctx context.Context, addr, password string, db int, dbPath string) error {
	c, err := NewRedisRosterCache(addr, password, db, 0, dbPath)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Invalidate(ctx)
}
