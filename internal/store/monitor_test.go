package store

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tradescout/tradescout/internal/logging"
)

type flipProber struct {
	up    atomic.Bool
	calls atomic.Int32
}

func (p *flipProber) TestConnection(context.Context) bool {
	p.calls.Add(1)
	return p.up.Load()
}

func TestMonitor_ProbeTracksChanges(t *testing.T) {
	p := &flipProber{}
	p.up.Store(true)
	m := NewMonitor(p, time.Hour, logging.Discard())

	assert.True(t, m.Status().CheckedAt.IsZero())

	first := m.Probe(context.Background())
	assert.True(t, first.Connected)
	assert.Equal(t, first.CheckedAt, first.LastChange)

	time.Sleep(2 * time.Millisecond)
	second := m.Probe(context.Background())
	assert.Equal(t, first.LastChange, second.LastChange, "no change, LastChange kept")

	p.up.Store(false)
	third := m.Probe(context.Background())
	assert.False(t, third.Connected)
	assert.True(t, third.LastChange.After(first.LastChange))
	assert.Equal(t, third, m.Status())
}

func TestMonitor_RunProbesImmediatelyAndStops(t *testing.T) {
	p := &flipProber{}
	m := NewMonitor(p, 10*time.Millisecond, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
	assert.False(t, m.Status().Connected)
}
