// Package cache puts a Redis read-through cache in front of the company
// directory. Company rows change rarely and are read on every accepted claim.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/movilidad/internal/company"
)

const keyPrefix = "movilidad:company:"

type Cache struct {
	client *redis.Client
	next   company.Repository
	ttl    time.Duration
	log    *zap.Logger
}

// New wraps next. A nil client disables caching entirely.
func New(client *redis.Client, next company.Repository, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}

	return &Cache{client: client, next: next, ttl: ttl, log: log}
}

func Key(employerID string) string {
	return keyPrefix + employerID
}

func (c *Cache) FindByID(ctx context.Context, employerID string) (*company.Company, error) {
	if c.client == nil {
		return c.next.FindByID(ctx, employerID)
	}

	raw, err := c.client.Get(ctx, Key(employerID)).Bytes()
	switch {
	case err == nil:
		var cached company.Company
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &cached, nil
		}

		c.log.Warn("discarding malformed cached company", zap.String("employer_id", employerID))
	case !errors.Is(err, redis.Nil):
		// Redis trouble must not block claims.
		c.log.Warn("company cache read failed", zap.String("employer_id", employerID), zap.Error(err))
	}

	found, err := c.next.FindByID(ctx, employerID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(found); err == nil {
		if err := c.client.Set(ctx, Key(employerID), payload, c.ttl).Err(); err != nil {
			c.log.Warn("company cache write failed", zap.String("employer_id", employerID), zap.Error(err))
		}
	}

	return found, nil
}
