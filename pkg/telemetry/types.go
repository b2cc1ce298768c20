package telemetry

// NameMax bounds signal and module names. A name occupies exactly NameMax
// bytes on the wire, NUL-padded on the right, so valid lengths are
// 1..NameMax-1.
const NameMax = 24

const (
	beginMarker = "=begin="
	endMarker   = "=end="
)

// ValueType tells the host how to interpret the 32-bit sample words of a
// signal. It is fixed when the signal is first registered.
type ValueType int32

// Supported value types.
const (
	TypeBool  ValueType = 0
	TypeInt   ValueType = 1
	TypeFloat ValueType = 2
)

// String implements fmt.Stringer.
func (t ValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	}
	return "unknown"
}

// ValidName reports if name is usable as a signal or module name: length in
// [1, NameMax), and not one of the frame markers.
func ValidName(name string) bool {
	if len(name) == 0 || len(name) >= NameMax {
		return false
	}
	return name != beginMarker && name != endMarker
}

// RecordSize returns the wire size in bytes of one signal record for the
// given package size.
func RecordSize(packageSize int) int {
	return NameMax + 4 + packageSize*4
}
