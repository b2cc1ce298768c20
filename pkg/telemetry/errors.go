package telemetry

import "errors"

var (
	// ErrMapOverflow indicates a Set with an unknown name while the map
	// already holds its full capacity of signals. The map is unchanged.
	ErrMapOverflow = errors.New("signal map overflow")
	// ErrBadName indicates a name with invalid length or one equal to a
	// frame marker.
	ErrBadName = errors.New("bad name")
)
