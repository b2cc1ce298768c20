package telemetry

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, p *Parser, data []byte) *Package {
	var pkg *Package
	for i, b := range data {
		got := p.Parse(b)
		if got != nil {
			require.Nil(t, pkg, "extra package at byte %d", i)
			pkg = got
		}
	}
	return pkg
}

func TestParserRoundTrip(t *testing.T) {
	m := NewMap(8, 3)
	require.NoError(t, m.SetBool("level", true))
	require.NoError(t, m.SetInt("count", -1234))
	require.NoError(t, m.SetFloat("zero+", float32(math.Copysign(0, 1))))
	require.NoError(t, m.SetFloat("zero-", float32(math.Copysign(0, -1))))
	require.NoError(t, m.SetFloat("nan", float32(math.NaN())))
	require.NoError(t, m.SetFloat("inf+", float32(math.Inf(1))))
	require.NoError(t, m.SetFloat("inf-", float32(math.Inf(-1))))
	require.NoError(t, m.SetPulse("edge", true))
	m.Tick(nil)
	require.NoError(t, m.SetInt("count", 17))
	m.Tick(nil)

	var buf bytes.Buffer
	require.NoError(t, WritePackage(&buf, "device0", m))

	pkg := feed(t, &Parser{PackageSize: 3}, buf.Bytes())
	require.NotNil(t, pkg)
	require.Equal(t, "device0", pkg.Module)
	require.Len(t, pkg.Signals, m.Len())
	m.Each(func(r *Record) {
		sig := pkg.Get(r.Name())
		require.NotNil(t, sig, "signal %q", r.Name())
		require.Equal(t, r.Type(), sig.Type)
		require.Equal(t, r.Samples(), sig.Vals)
	})
}

func TestParserEmptyPackage(t *testing.T) {
	m := NewMap(1, 2)
	var buf bytes.Buffer
	require.NoError(t, WritePackage(&buf, "m", m))

	pkg := feed(t, &Parser{PackageSize: 2}, buf.Bytes())
	require.NotNil(t, pkg)
	require.Equal(t, "m", pkg.Module)
	require.Empty(t, pkg.Signals)
}

func TestParserResync(t *testing.T) {
	m := NewMap(2, 2)
	require.NoError(t, m.SetInt("a", 7))
	var good bytes.Buffer
	require.NoError(t, WritePackage(&good, "m", m))

	testCases := []struct {
		name    string
		cut     int
		recover int
	}{
		// emission died inside the begin marker: the next package is intact
		{"cut in marker", 5, 2},
		// the bogus size field swallows the following package as payload,
		// so only the one after is recovered
		{"cut in module name", 20, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var stream []byte
			stream = append(stream, []byte{0x00, '=', 'b', 0xFF, 0x3D}...) // noise
			stream = append(stream, good.Bytes()[:tc.cut]...)              // partial package
			stream = append(stream, good.Bytes()...)
			stream = append(stream, good.Bytes()...)

			parser := &Parser{PackageSize: 2}
			var pkgs []*Package
			for _, b := range stream {
				if pkg := parser.Parse(b); pkg != nil {
					pkgs = append(pkgs, pkg)
				}
			}
			require.Len(t, pkgs, tc.recover)
			for _, pkg := range pkgs {
				require.Equal(t, "m", pkg.Module)
				require.Equal(t, []int32{7, 0}, pkg.Get("a").Vals)
			}
		})
	}
}

func TestParserBadSize(t *testing.T) {
	parser := &Parser{PackageSize: 2}
	var stream []byte
	stream = append(stream, "=begin="...)
	stream = append(stream, le32(25)...) // 25-24 is not a record multiple
	require.Nil(t, feed(t, parser, stream))

	// parser recovers for the next well-formed package
	m := NewMap(1, 2)
	var buf bytes.Buffer
	require.NoError(t, WritePackage(&buf, "m", m))
	require.NotNil(t, feed(t, parser, buf.Bytes()))
}

func TestParserBadEndMarker(t *testing.T) {
	m := NewMap(1, 1)
	var buf bytes.Buffer
	require.NoError(t, WritePackage(&buf, "m", m))
	bad := append([]byte(nil), buf.Bytes()...)
	bad[len(bad)-1] = 'x'

	parser := &Parser{PackageSize: 1}
	require.Nil(t, feed(t, parser, bad))
	require.NotNil(t, feed(t, parser, buf.Bytes()))
}

func TestParserReset(t *testing.T) {
	m := NewMap(1, 1)
	var buf bytes.Buffer
	require.NoError(t, WritePackage(&buf, "m", m))

	parser := &Parser{PackageSize: 1}
	feed(t, parser, buf.Bytes()[:15])
	parser.Reset()
	require.NotNil(t, feed(t, parser, buf.Bytes()))
}
