// Package rediscache wraps the event repository with a read-through Redis
// cache. Cache misses and Redis failures fall back to the wrapped store; a
// broken cache never fails a read.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

const eventKeyPrefix = "event:"

type EventCache struct {
	inner  database.EventRepository
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewEventCache(inner database.EventRepository, client *redis.Client, ttl time.Duration, log *logrus.Logger) *EventCache {
	return &EventCache{inner: inner, client: client, ttl: ttl, log: log}
}

// Save writes through to the wrapped store and drops the cached copy instead
// of refreshing it, so a failed Del only costs one stale-free miss.
func (c *EventCache) Save(ctx context.Context, event *entity.Event) error {
	if err := c.inner.Save(ctx, event); err != nil {
		return err
	}
	if err := c.client.Del(ctx, eventKeyPrefix+event.ID).Err(); err != nil {
		c.log.WithError(err).WithField("event_id", event.ID).Warn("failed to invalidate event cache")
	}
	return nil
}

func (c *EventCache) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	data, err := c.client.Get(ctx, eventKeyPrefix+id).Result()
	if err == nil {
		var event entity.Event
		if err := json.Unmarshal([]byte(data), &event); err == nil {
			return &event, nil
		}
		c.log.WithField("event_id", id).Warn("corrupt event cache entry, falling back")
	} else if !errors.Is(err, redis.Nil) {
		c.log.WithError(err).Warn("event cache read failed, falling back")
	}

	event, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, event)
	return event, nil
}

// FindAll is filter-dependent and cheap relative to point lookups, it always
// goes straight to the wrapped store.
func (c *EventCache) FindAll(ctx context.Context, filter database.EventFilter) ([]*entity.Event, error) {
	return c.inner.FindAll(ctx, filter)
}

func (c *EventCache) store(ctx context.Context, event *entity.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, eventKeyPrefix+event.ID, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("event_id", event.ID).Warn("failed to cache event")
	}
}
