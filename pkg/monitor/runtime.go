package monitor

import (
	"runtime"

	"github.com/sigview/sigview.go/pkg/telemetry"
)

// RuntimeStats is a built-in Source streaming process statistics, so the
// daemon has signals to plot without any instrumented firmware attached:
// goroutine count, heap in use (KiB) and completed GC cycles.
type RuntimeStats struct{}

// Sample implements Source.
func (RuntimeStats) Sample(m *telemetry.Map) error {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if err := m.SetInt("goroutines", int32(runtime.NumGoroutine())); err != nil {
		return err
	}
	if err := m.SetInt("heap_kib", int32(ms.HeapInuse/1024)); err != nil {
		return err
	}
	return m.SetInt("gc_cycles", int32(ms.NumGC))
}
