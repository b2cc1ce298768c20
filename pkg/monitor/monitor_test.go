package monitor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sigview/sigview.go/pkg/telemetry"
)

// bufSink collects whole packages, one per Flush.
type bufSink struct {
	cur      bytes.Buffer
	packages [][]byte
}

func (s *bufSink) Write(b []byte) (int, error) {
	return s.cur.Write(b)
}

func (s *bufSink) Flush() error {
	s.packages = append(s.packages, append([]byte(nil), s.cur.Bytes()...))
	s.cur.Reset()
	return nil
}

func TestMonitorStep(t *testing.T) {
	s := &bufSink{}
	mon := New("dev", telemetry.NewMap(4, 3), s)

	count := int32(0)
	mon.AddSource(SourceFunc(func(m *telemetry.Map) error {
		count++
		return m.SetInt("count", count)
	}))

	for i := 0; i < 6; i++ {
		mon.Step()
	}
	require.Len(t, s.packages, 2)

	parser := &telemetry.Parser{PackageSize: 3}
	for n, data := range s.packages {
		var pkg *telemetry.Package
		for _, b := range data {
			if got := parser.Parse(b); got != nil {
				pkg = got
			}
		}
		require.NotNil(t, pkg, "package %d", n)
		require.Equal(t, "dev", pkg.Module)
		base := int32(n * 3)
		require.Equal(t, []int32{base + 1, base + 2, base + 3}, pkg.Get("count").Vals)
	}
}

func TestRuntimeStats(t *testing.T) {
	m := telemetry.NewMap(8, 1)
	require.NoError(t, RuntimeStats{}.Sample(m))
	require.Equal(t, 3, m.Len())
	require.True(t, m.Get("goroutines").Samples()[0] > 0)
	require.Equal(t, telemetry.TypeInt, m.Get("heap_kib").Type())
}

func TestMonitorStepSourceError(t *testing.T) {
	s := &bufSink{}
	// capacity 1 makes the second signal overflow; the monitor keeps going
	mon := New("dev", telemetry.NewMap(1, 1), s)
	mon.AddSource(SourceFunc(func(m *telemetry.Map) error {
		if err := m.SetInt("a", 1); err != nil {
			return err
		}
		return m.SetInt("b", 2)
	}))
	mon.Step()
	mon.Step()
	require.Len(t, s.packages, 2)
}
