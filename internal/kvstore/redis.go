package kvstore

import (
	"context"
	"errors"
	"sort"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*Redis)(nil)

// Redis stores the documents as plain string values. The client is owned by the
// caller, so Close leaves it open.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, keyPrefix string) *Redis {
	return &Redis{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key), attribute.Int("size", len(value)))

	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// SetMany relies on MSET, which redis applies atomically.
func (r *Redis) SetMany(ctx context.Context, values map[string][]byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.setMany")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("keys", len(values)))

	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]interface{}, 0, len(values)*2)
	for _, k := range keys {
		pairs = append(pairs, r.key(k), values[k])
	}

	return r.client.MSet(ctx, pairs...).Err()
}

func (r *Redis) Close() error {
	return nil
}
