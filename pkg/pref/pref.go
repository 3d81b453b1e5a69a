// Package pref provides small persisted user preferences.
//
// A preference is a single key in a Store. Stores are plain key/value
// mappings: MemoryStore for tests and one-off runs, FileStore for a
// browser-like local store on disk, S3Store for a shared bucket.
//
// Example:
//
//	store, _ := pref.NewFileStore(".site/prefs.json")
//	name := pref.New("contactName", "", pref.WithStore(store))
//
//	// Read once at start-up
//	last, err := name.Load(ctx)
//
//	// Write after a successful submit
//	err = name.Set(ctx, "Oksana")
package pref

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// PrefOption is a functional option for configuring preferences.
type PrefOption func(*prefConfig)

type prefConfig struct {
	store Store
}

// WithStore binds the preference to a store. Without one the preference
// lives in memory only.
func WithStore(s Store) PrefOption {
	return func(c *prefConfig) {
		c.store = s
	}
}

// Pref is a typed preference persisted under one key.
// Strings are stored verbatim, other types as JSON.
type Pref[T any] struct {
	key       string
	value     T
	defaults  T
	updatedAt time.Time
	store     Store

	mu sync.RWMutex
}

// New creates a new preference with the given key and default value.
func New[T any](key string, defaultValue T, opts ...PrefOption) *Pref[T] {
	var config prefConfig
	for _, opt := range opts {
		opt(&config)
	}
	if config.store == nil {
		config.store = NewMemoryStore()
	}

	return &Pref[T]{
		key:      key,
		value:    defaultValue,
		defaults: defaultValue,
		store:    config.store,
	}
}

// Load reads the stored value, falling back to the default when the key
// is absent. The loaded value becomes the current value.
func (p *Pref[T]) Load(ctx context.Context) (T, error) {
	raw, ok, err := p.store.Get(ctx, p.key)
	if err != nil {
		return p.Get(), fmt.Errorf("pref %q: load: %w", p.key, err)
	}

	value := p.defaults
	if ok {
		value, err = decode[T](raw)
		if err != nil {
			return p.Get(), fmt.Errorf("pref %q: decode: %w", p.key, err)
		}
	}

	p.mu.Lock()
	p.value = value
	p.mu.Unlock()
	return value, nil
}

// Get returns the current preference value.
func (p *Pref[T]) Get() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set updates the value and writes it to the store. The in-memory value
// is updated even when the write fails.
func (p *Pref[T]) Set(ctx context.Context, value T) error {
	p.mu.Lock()
	p.value = value
	p.updatedAt = time.Now()
	p.mu.Unlock()

	raw, err := encode(value)
	if err != nil {
		return fmt.Errorf("pref %q: encode: %w", p.key, err)
	}
	if err := p.store.Set(ctx, p.key, raw); err != nil {
		return fmt.Errorf("pref %q: store: %w", p.key, err)
	}
	return nil
}

// Reset writes the default value back.
func (p *Pref[T]) Reset(ctx context.Context) error {
	return p.Set(ctx, p.defaults)
}

// Key returns the preference key.
func (p *Pref[T]) Key() string {
	return p.key
}

// UpdatedAt returns when the preference was last set, or the zero time.
func (p *Pref[T]) UpdatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updatedAt
}

func encode[T any](value T) (string, error) {
	if s, ok := any(value).(string); ok {
		return s, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decode[T any](raw string) (T, error) {
	var value T
	if p, ok := any(&value).(*string); ok {
		*p = raw
		return value, nil
	}
	err := json.Unmarshal([]byte(raw), &value)
	return value, err
}
