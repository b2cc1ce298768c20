// Package monitor drives the sampling tick and ships packages to a sink.
package monitor

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/sigview/sigview.go/pkg/sink"
	"github.com/sigview/sigview.go/pkg/telemetry"
)

// Source contributes samples to the map. Sample is called once per tick,
// before the cursor advances.
type Source interface {
	Sample(*telemetry.Map) error
}

// SourceFunc is the func form of Source.
type SourceFunc func(*telemetry.Map) error

// Sample implements Source.
func (f SourceFunc) Sample(m *telemetry.Map) error {
	return f(m)
}

// Monitor ticks a signal map at a fixed interval and emits one package per
// full window. Transport errors are logged and dropped: the device has no
// back channel, and the next window produces a fresh package.
type Monitor struct {
	Module   string
	Interval time.Duration
	Map      *telemetry.Map
	Sink     sink.Sink

	sources []Source
}

// New creates a Monitor.
func New(module string, m *telemetry.Map, s sink.Sink) *Monitor {
	return &Monitor{
		Module:   module,
		Interval: 100 * time.Millisecond,
		Map:      m,
		Sink:     s,
	}
}

// AddSource registers sources to be sampled on every tick.
func (mon *Monitor) AddSource(sources ...Source) *Monitor {
	mon.sources = append(mon.sources, sources...)
	return mon
}

// Step performs one sampling tick: all sources sample into the map, the
// cursor advances, and on wrap-around the accumulated package is sent.
func (mon *Monitor) Step() {
	for _, src := range mon.sources {
		if err := src.Sample(mon.Map); err != nil {
			glog.Warningf("sample error: %v", err)
		}
	}
	mon.Map.Tick(func(m *telemetry.Map) {
		if err := sink.Send(mon.Sink, mon.Module, m); err != nil {
			glog.Errorf("send package: %v", err)
		}
	})
}

// Run implements Runnable: Step at every interval until ctx ends.
func (mon *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(mon.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			mon.Step()
		}
	}
}
