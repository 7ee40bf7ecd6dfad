package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/tradescout/tradescout/internal/core"
)

// DefaultMirrorKey is the key the mirror is stored under.
const DefaultMirrorKey = "tradescout-customers"

// ErrMirrorEmpty is returned by Load when nothing has been saved yet.
var ErrMirrorEmpty = errors.New("mirror empty")

// Mirror is a durable local copy of the whole customer list. Save always
// overwrites the previous copy.
type Mirror interface {
	Load(ctx context.Context) ([]core.Record, error)
	Save(ctx context.Context, records []core.Record) error
}

// RedisMirror keeps the list as one JSON value under a fixed key, without
// expiry.
type RedisMirror struct {
	c   *redis.Client
	key string
}

func NewRedisMirror(c *redis.Client, key string) *RedisMirror {
	if key == "" {
		key = DefaultMirrorKey
	}
	return &RedisMirror{c: c, key: key}
}

func (m *RedisMirror) Load(ctx context.Context) ([]core.Record, error) {
	val, err := m.c.Get(ctx, m.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMirrorEmpty
		}
		return nil, fmt.Errorf("read mirror: %w", err)
	}
	return decodeRecords(val)
}

func (m *RedisMirror) Save(ctx context.Context, records []core.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	if err := m.c.Set(ctx, m.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write mirror: %w", err)
	}
	return nil
}

// MemoryMirror is a process-local Mirror for development and tests.
type MemoryMirror struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryMirror() *MemoryMirror { return &MemoryMirror{} }

func (m *MemoryMirror) Load(context.Context) ([]core.Record, error) {
	m.mu.Lock()
	data := m.data
	m.mu.Unlock()

	if data == nil {
		return nil, ErrMirrorEmpty
	}
	return decodeRecords(data)
}

func (m *MemoryMirror) Save(_ context.Context, records []core.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// SetRaw replaces the stored bytes without validation.
func (m *MemoryMirror) SetRaw(data []byte) {
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
}

func encodeRecords(records []core.Record) ([]byte, error) {
	if records == nil {
		records = []core.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode mirror: %w", err)
	}
	return data, nil
}

func decodeRecords(data []byte) ([]core.Record, error) {
	var records []core.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse mirror: %w", err)
	}
	if records == nil {
		records = []core.Record{}
	}
	return records, nil
}
