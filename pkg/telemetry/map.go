package telemetry

import "math"

// Record holds the accumulated samples of one registered signal.
type Record struct {
	name      string
	vtype     ValueType
	onlyFront bool
	vals      []int32
}

// Name returns the signal name.
func (r *Record) Name() string { return r.name }

// Type returns the value type fixed at registration.
func (r *Record) Type() ValueType { return r.vtype }

// OnlyFront reports if the current sample was written as a one-slot impulse.
func (r *Record) OnlyFront() bool { return r.onlyFront }

// Samples returns the raw 32-bit sample words, one per slot of the current
// window. The returned slice is the record's own storage.
func (r *Record) Samples() []int32 { return r.vals }

// Map accumulates up to PackageSize time-aligned samples for each of up to
// its capacity of named signals. All signals advance in lockstep on one
// shared cursor.
//
// Map is not synchronized. Set and Tick must be serialized by the caller,
// e.g. by invoking both from the same loop. An interrupted Set can leave the
// impulse flag updated without the matching sample write.
type Map struct {
	records []Record
	vals    []int32 // backing storage, capacity*pkgSize
	pkgSize int
	current int
}

// NewMap creates an empty map for up to capacity signals with packageSize
// samples per signal. All sample storage is allocated here; nothing grows
// afterwards. capacity and packageSize must be at least 1.
func NewMap(capacity, packageSize int) *Map {
	if capacity < 1 || packageSize < 1 {
		panic("telemetry: capacity and package size must be at least 1")
	}
	return &Map{
		records: make([]Record, 0, capacity),
		vals:    make([]int32, capacity*packageSize),
		pkgSize: packageSize,
	}
}

// Len returns the number of registered signals.
func (m *Map) Len() int { return len(m.records) }

// PackageSize returns the number of samples per signal in one package.
func (m *Map) PackageSize() int { return m.pkgSize }

// IsFirst reports if the cursor is at the first slot of the window.
func (m *Map) IsFirst() bool { return m.current == 0 }

// IsLast reports if the cursor is at the last slot of the window.
func (m *Map) IsLast() bool { return m.current == m.pkgSize-1 }

// Get returns the record registered under name, or nil.
func (m *Map) Get(name string) *Record {
	for i := range m.records {
		if m.records[i].name == name {
			return &m.records[i]
		}
	}
	return nil
}

// Each calls fn for every registered signal in registration order.
func (m *Map) Each(fn func(*Record)) {
	for i := range m.records {
		fn(&m.records[i])
	}
}

// SetBool stores a level sample: held across silent ticks.
func (m *Map) SetBool(name string, v bool) error {
	return m.set(name, TypeBool, boolBits(v), false)
}

// SetInt stores a signed 32-bit sample.
func (m *Map) SetInt(name string, v int32) error {
	return m.set(name, TypeInt, v, false)
}

// SetFloat stores the IEEE-754 bit pattern of v.
func (m *Map) SetFloat(name string, v float32) error {
	return m.set(name, TypeFloat, int32(math.Float32bits(v)), false)
}

// SetPulse stores a boolean as a one-slot impulse: the next silent slot is
// zeroed instead of holding the value, so every edge plots as a single spike.
func (m *Map) SetPulse(name string, v bool) error {
	return m.set(name, TypeBool, boolBits(v), true)
}

func (m *Map) set(name string, vtype ValueType, bits int32, onlyFront bool) error {
	rec := m.Get(name)
	if rec == nil {
		if !ValidName(name) {
			return ErrBadName
		}
		if len(m.records) == cap(m.records) {
			return ErrMapOverflow
		}
		n := len(m.records)
		m.records = m.records[:n+1]
		rec = &m.records[n]
		rec.name = name
		rec.vtype = vtype
		rec.vals = m.vals[n*m.pkgSize : (n+1)*m.pkgSize]
	}
	rec.vals[m.current] = bits
	rec.onlyFront = onlyFront
	return nil
}

// Tick advances the shared cursor by one slot. When the cursor wraps, flush
// is invoked synchronously with the map: a full window of samples has
// accumulated and should be emitted. After the flush the new current slot of
// every signal is seeded: zero for impulse signals, else the previous slot's
// value (sample-and-hold), so the seed is the first write of the new window.
func (m *Map) Tick(flush func(*Map)) {
	prev := m.current
	m.current++
	if m.current >= m.pkgSize {
		m.current -= m.pkgSize
		if flush != nil {
			flush(m)
		}
	}
	for i := range m.records {
		rec := &m.records[i]
		if rec.onlyFront {
			rec.vals[m.current] = 0
		} else {
			rec.vals[m.current] = rec.vals[prev]
		}
	}
}

func boolBits(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
