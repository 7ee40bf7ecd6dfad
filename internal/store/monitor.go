package store

// monitor.go probes the gateway in the background so the status endpoint can
// report connectivity without issuing a query per request.

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tradescout/tradescout/internal/logging"
)

// Prober is the part of Gateway the monitor needs.
type Prober interface {
	TestConnection(ctx context.Context) bool
}

// ConnectionStatus is the last probe result.
type ConnectionStatus struct {
	Connected  bool      `json:"connected"`
	CheckedAt  time.Time `json:"checkedAt"`
	LastChange time.Time `json:"lastChange"`
}

// Monitor periodically probes a gateway.
type Monitor struct {
	prober   Prober
	interval time.Duration
	logger   *slog.Logger

	mu     sync.RWMutex
	status ConnectionStatus
}

// NewMonitor returns a monitor that probes every interval.
func NewMonitor(p Prober, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Monitor{prober: p, interval: interval, logger: logging.OrDefault(logger)}
}

// Run probes immediately, then every interval, until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.logger.Info("connection monitor started", "interval", m.interval)

	m.Probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("connection monitor stopped")
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// Probe runs one connectivity check and records the result.
func (m *Monitor) Probe(ctx context.Context) ConnectionStatus {
	ok := m.prober.TestConnection(ctx)
	now := time.Now()

	m.mu.Lock()
	changed := m.status.CheckedAt.IsZero() || m.status.Connected != ok
	m.status.Connected = ok
	m.status.CheckedAt = now
	if changed {
		m.status.LastChange = now
	}
	st := m.status
	m.mu.Unlock()

	if changed {
		if ok {
			m.logger.Info("customer store reachable")
		} else {
			m.logger.Warn("customer store unreachable")
		}
	}
	return st
}

// Status returns the last probe result. CheckedAt is zero before the first
// probe.
func (m *Monitor) Status() ConnectionStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}
