// Package kvstore persists whole JSON documents under string keys.
//
// Every backend offers the same three primitives (get, set, and an all-or-nothing
// multi set), and the generic Read / Write helpers layer JSON encoding on top.
// Read never fails: a missing, empty or malformed entry yields the caller's default.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	// Get returns ErrNotFound when the key holds no value.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all values or none of them.
	SetMany(ctx context.Context, values map[string][]byte) error
	Close() error
}

// Read loads and decodes the value under key, falling back to def on any failure.
func Read[T any](ctx context.Context, s Store, key string, def T) T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Tracef("kvstore read [%s]: not found, using default", key)
		} else {
			log.Errorf("kvstore read [%s]: %s, using default", key, err)
		}
		return def
	}

	if len(raw) == 0 {
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warnf("kvstore read [%s]: malformed value, using default: %s", key, err)
		return def
	}

	return value
}

func Write[T any](ctx context.Context, s Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal [%s]: %w", key, err)
	}

	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("set [%s]: %w", key, err)
	}

	return nil
}

// WriteMany encodes every value before touching the store, then commits them in a
// single SetMany call.
func WriteMany(ctx context.Context, s Store, values map[string]any) error {
	encoded := make(map[string][]byte, len(values))
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal [%s]: %w", key, err)
		}
		encoded[key] = raw
	}

	if err := s.SetMany(ctx, encoded); err != nil {
		return fmt.Errorf("set many: %w", err)
	}

	return nil
}
