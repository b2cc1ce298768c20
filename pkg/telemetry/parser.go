package telemetry

import (
	"bytes"
	"encoding/binary"
)

// Signal is one decoded record of a package.
type Signal struct {
	Name string
	Type ValueType
	Vals []int32
}

// Package is one decoded wire package.
type Package struct {
	Module  string
	Signals []Signal
}

// Get returns the decoded signal with the given name, or nil. The host
// treats a package as an unordered set of signals keyed by name.
func (p *Package) Get(name string) *Signal {
	for i := range p.Signals {
		if p.Signals[i].Name == name {
			return &p.Signals[i]
		}
	}
	return nil
}

// Parser decodes packages from a byte stream, one byte at a time. It is the
// host-side counterpart of WritePackage. PackageSize is not transmitted and
// must match the sender.
//
// On any framing violation the parser silently drops the current package and
// scans for the next begin marker.
type Parser struct {
	PackageSize int

	state   parseState
	matched int
	buf     []byte
	left    int
	pkg     *Package
}

type parseState int

const (
	stateMarker parseState = iota // scanning for "=begin="
	stateSize                     // 4 bytes full_size
	stateModule                   // NameMax bytes module name
	stateRecord                   // one signal record
	stateEnd                      // "=end=" literal
)

// Parse consumes one byte and returns a completed package, or nil.
func (p *Parser) Parse(b byte) *Package {
	switch p.state {
	case stateMarker:
		p.parseMarker(b)
	case stateSize:
		if p.collect(b, 4) {
			p.beginPackage(binary.LittleEndian.Uint32(p.buf))
		}
	case stateModule:
		if p.collect(b, NameMax) {
			p.pkg.Module = decodeName(p.buf)
			p.nextRecord()
		}
	case stateRecord:
		if p.collect(b, RecordSize(p.PackageSize)) {
			p.pkg.Signals = append(p.pkg.Signals, decodeRecord(p.buf, p.PackageSize))
			p.left--
			p.nextRecord()
		}
	case stateEnd:
		if b != endMarker[p.matched] {
			p.resync(b)
			return nil
		}
		if p.matched++; p.matched == len(endMarker) {
			pkg := p.pkg
			p.reset()
			return pkg
		}
	}
	return nil
}

// Reset discards any partially decoded package.
func (p *Parser) Reset() {
	p.reset()
}

func (p *Parser) reset() {
	p.state, p.matched, p.left = stateMarker, 0, 0
	p.buf, p.pkg = p.buf[:0], nil
}

func (p *Parser) resync(b byte) {
	p.reset()
	p.parseMarker(b)
}

func (p *Parser) parseMarker(b byte) {
	if b == beginMarker[p.matched] {
		if p.matched++; p.matched == len(beginMarker) {
			p.state, p.matched = stateSize, 0
		}
		return
	}
	p.matched = 0
	if b == beginMarker[0] {
		p.matched = 1
	}
}

func (p *Parser) collect(b byte, need int) bool {
	p.buf = append(p.buf, b)
	return len(p.buf) == need
}

func (p *Parser) beginPackage(fullSize uint32) {
	payload := int(fullSize) - NameMax
	if payload < 0 || payload%RecordSize(p.PackageSize) != 0 {
		p.reset()
		return
	}
	p.left = payload / RecordSize(p.PackageSize)
	p.pkg = &Package{}
	p.state, p.buf = stateModule, p.buf[:0]
}

func (p *Parser) nextRecord() {
	p.buf = p.buf[:0]
	if p.left == 0 {
		p.state, p.matched = stateEnd, 0
	} else {
		p.state = stateRecord
	}
}

func decodeRecord(buf []byte, packageSize int) Signal {
	sig := Signal{
		Name: decodeName(buf[:NameMax]),
		Type: ValueType(binary.LittleEndian.Uint32(buf[NameMax:])),
		Vals: make([]int32, packageSize),
	}
	for i := range sig.Vals {
		sig.Vals[i] = int32(binary.LittleEndian.Uint32(buf[NameMax+4+i*4:]))
	}
	return sig
}

func decodeName(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}
