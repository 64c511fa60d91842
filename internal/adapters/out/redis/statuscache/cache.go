// Package statuscache keeps package status lookup rows in Redis so intake and delivery do
// not hit the lookup table on every request.
package statuscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "parcelhub:package-status:"

type entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedBy *string   `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RedisStatusCache implements ports.StatusCache on a Redis client.
type RedisStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to the Redis instance at redisURL, in the form
// redis://[:password@]host[:port][/database]. A zero ttl keeps entries forever.
func New(redisURL string, ttl time.Duration) (*RedisStatusCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return NewWithClient(redis.NewClient(opts), ttl), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{client: client, ttl: ttl}
}

func (c *RedisStatusCache) Get(ctx context.Context, status shipment.Status) (shipment.StatusRecord, bool, error) {
	raw, err := c.client.Get(ctx, key(status)).Bytes()
	if errors.Is(err, redis.Nil) {
		return shipment.StatusRecord{}, false, nil
	}
	if err != nil {
		return shipment.StatusRecord{}, false, fmt.Errorf("failed to get status %s: %w", status, err)
	}

	var e entry
	if err = json.Unmarshal(raw, &e); err != nil {
		return shipment.StatusRecord{}, false, fmt.Errorf("failed to decode status %s: %w", status, err)
	}
	record, err := e.toDomain()
	if err != nil {
		return shipment.StatusRecord{}, false, fmt.Errorf("failed to decode status %s: %w", status, err)
	}
	return record, true, nil
}

func (c *RedisStatusCache) Set(ctx context.Context, record shipment.StatusRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	e := entry{
		ID:        record.ID().String(),
		Name:      record.Name(),
		UpdatedAt: record.UpdatedAt(),
	}
	if by := record.UpdatedBy(); by != nil {
		s := by.String()
		e.UpdatedBy = &s
	}

	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err = c.client.Set(ctx, key(record.Status()), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set status %s: %w", record.Name(), err)
	}
	return nil
}

// Ping checks that Redis is reachable.
func (c *RedisStatusCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisStatusCache) Close() error {
	return c.client.Close()
}

func key(status shipment.Status) string {
	return keyPrefix + status.String()
}

func (e entry) toDomain() (shipment.StatusRecord, error) {
	id, err := kernel.UUIDFromString(e.ID)
	if err != nil {
		return shipment.StatusRecord{}, err
	}
	status, err := shipment.ParseStatus(e.Name)
	if err != nil {
		return shipment.StatusRecord{}, err
	}

	var updatedBy *kernel.UUID
	if e.UpdatedBy != nil {
		by, byErr := kernel.UUIDFromString(*e.UpdatedBy)
		if byErr != nil {
			return shipment.StatusRecord{}, byErr
		}
		updatedBy = &by
	}
	return shipment.NewStatusRecord(id, status, updatedBy, e.UpdatedAt)
}
