package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/logging"
)

// Memory is an in-process Gateway for development and tests.
type Memory struct {
	mu      sync.RWMutex
	records map[string]core.Record
	now     func() time.Time
	logger  *slog.Logger
}

// NewMemory returns an empty in-memory gateway.
func NewMemory(logger *slog.Logger) *Memory {
	return &Memory{
		records: make(map[string]core.Record),
		now:     time.Now,
		logger:  logging.OrDefault(logger),
	}
}

// Seed inserts records as-is, keeping their ids and timestamps.
func (m *Memory) Seed(records ...core.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.records[r.ID] = r
	}
}

func (m *Memory) List(ctx context.Context) ([]core.Record, error) {
	return m.Search(ctx, core.SearchFilters{})
}

func (m *Memory) GetByID(_ context.Context, id string) (core.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok {
		return core.Record{}, &core.TransportError{Op: "get", Err: core.ErrNotFound}
	}
	return r, nil
}

func (m *Memory) Create(_ context.Context, in core.Input) (core.Record, error) {
	in = in.Normalize()
	if err := core.ValidateInput(in); err != nil {
		return core.Record{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := core.NewRecord(uuid.NewString(), m.now().UTC(), in)
	m.records[r.ID] = r
	return r, nil
}

func (m *Memory) Update(_ context.Context, id string, in core.Input) (core.Record, error) {
	in = in.Normalize()
	if err := core.ValidateInput(in); err != nil {
		return core.Record{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok {
		return core.Record{}, &core.TransportError{Op: "update", Err: core.ErrNotFound}
	}
	r = r.Apply(in)
	m.records[id] = r
	return r, nil
}

// Delete removes the record. An unknown id is not an error.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		m.logger.Debug("delete matched no rows", "id", id)
		return nil
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) Search(_ context.Context, f core.SearchFilters) ([]core.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Record, 0, len(m.records))
	for _, r := range m.records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) TestConnection(context.Context) bool { return true }
