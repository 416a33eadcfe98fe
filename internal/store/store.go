// Package store persists small JSON values under string keys.
//
// A Value binds a key to a typed default. Reads fall back to the default when
// the key is missing or cannot be decoded; writes are logged and swallowed on
// failure so a broken store never takes the application down with it.
package store

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Backend is the raw key/value storage a Value reads from and writes to.
type Backend interface {
	// Load returns the stored bytes for key. ok is false when the key is absent.
	Load(key string) (data []byte, ok bool, err error)
	// Save stores data under key, replacing any previous value.
	Save(key string, data []byte) error
}

// Value is a typed accessor pair over a single backend key.
type Value[T any] struct {
	backend Backend
	key     string
	def     func() T
	logger  *slog.Logger
}

// NewValue returns a Value that falls back to def.
func NewValue[T any](backend Backend, key string, def T) *Value[T] {
	return NewLazyValue(backend, key, func() T { return def })
}

// NewLazyValue returns a Value whose default is produced on first use. The
// producer runs at most once per Value.
func NewLazyValue[T any](backend Backend, key string, producer func() T) *Value[T] {
	return &Value[T]{
		backend: backend,
		key:     key,
		def:     sync.OnceValue(producer),
		logger:  slog.Default().With("component", "store", "key", key),
	}
}

// Key returns the backend key this value is bound to.
func (v *Value[T]) Key() string {
	return v.key
}

// Default returns the fallback value, producing it if needed.
func (v *Value[T]) Default() T {
	return v.def()
}

// Get returns the stored value, or the default when the key is missing or
// the stored data cannot be decoded into T.
func (v *Value[T]) Get() T {
	data, ok, err := v.backend.Load(v.key)
	if err != nil {
		v.logger.Warn("failed to load value, using default", "error", err)
		return v.def()
	}

	if !ok {
		return v.def()
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		v.logger.Warn("failed to decode stored value, using default", "error", err)
		return v.def()
	}

	return out
}

// Set serializes val and writes it through to the backend. Failures are
// logged and otherwise ignored.
func (v *Value[T]) Set(val T) {
	data, err := json.Marshal(val)
	if err != nil {
		v.logger.Error("failed to encode value", "error", err)
		return
	}

	if err := v.backend.Save(v.key, data); err != nil {
		v.logger.Error("failed to save value", "error", err)
	}
}
