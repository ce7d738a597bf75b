// Package redis provides a Redis implementation of the subscribers repository.
//
// Each subscriber is stored as a hash under "<prefix>subscriber:<id>" and
// its id is appended to the list "<prefix>subscribers", which defines the
// natural order of listings.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/subscribers-api/internal/domain"
	"github.com/bissquit/subscribers-api/internal/subscribers"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	fieldName    = "name"
	fieldChannel = "subscribedChannel"
)

// Repository implements the subscribers.Repository interface using Redis.
type Repository struct {
	client *redis.Client
	prefix string
}

// NewRepository creates a new Redis repository. keyPrefix namespaces every key.
func NewRepository(client *redis.Client, keyPrefix string) *Repository {
	return &Repository{client: client, prefix: keyPrefix}
}

func (r *Repository) indexKey() string {
	return r.prefix + "subscribers"
}

func (r *Repository) subscriberKey(id string) string {
	return r.prefix + "subscriber:" + id
}

// ListNames retrieves subscriber names in insertion order.
func (r *Repository) ListNames(ctx context.Context) ([]string, error) {
	ids, err := r.client.LRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list subscriber ids: %w", err)
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGet(ctx, r.subscriberKey(id), fieldName)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("list subscriber names: %w", err)
	}

	names := make([]string, 0, len(ids))
	for _, cmd := range cmds {
		name, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read subscriber name: %w", err)
		}
		names = append(names, name)
	}
	return names, nil
}

// List retrieves all subscribers in insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.Subscriber, error) {
	ids, err := r.client.LRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list subscriber ids: %w", err)
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, r.subscriberKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}

	result := make([]domain.Subscriber, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		result = append(result, fromHash(ids[i], fields))
	}
	return result, nil
}

// GetByID retrieves a subscriber by its ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Subscriber, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", subscribers.ErrInvalidID, id, err)
	}
	// Keys always hold the canonical lowercase form.
	id = parsed.String()

	fields, err := r.client.HGetAll(ctx, r.subscriberKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get subscriber by id: %w", err)
	}
	if len(fields) == 0 {
		return nil, subscribers.ErrNotFound
	}

	sub := fromHash(id, fields)
	return &sub, nil
}

// Create stores the subscriber hash and appends its id to the index atomically.
func (r *Repository) Create(ctx context.Context, sub *domain.Subscriber) error {
	id := uuid.NewString()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.subscriberKey(id), toHash(sub))
		pipe.RPush(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}

	sub.ID = id
	return nil
}

// Ping verifies Redis is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func toHash(sub *domain.Subscriber) map[string]interface{} {
	return map[string]interface{}{
		fieldName:    sub.Name,
		fieldChannel: sub.SubscribedChannel,
	}
}

func fromHash(id string, fields map[string]string) domain.Subscriber {
	return domain.Subscriber{
		ID:                id,
		Name:              fields[fieldName],
		SubscribedChannel: fields[fieldChannel],
	}
}
