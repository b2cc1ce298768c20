// Package telemetry provides the device side of the signal plotting
// protocol.
package telemetry

// The device names a set of signals (bool, int32, float32), updates their
// current values at a sampling tick, and periodically emits a framed binary
// package over a byte-oriented link. The host reassembles packages into
// time-series plots.
//
// A package carries exactly PackageSize samples for every registered signal,
// all aligned to one shared time cursor, framed by the "=begin=" and "=end="
// markers. All multi-byte fields are little-endian. There is no checksum and
// no back channel: a corrupted or truncated package is dropped by the host,
// which resynchronizes on the next begin marker.
//
// Producer: device firmware
// Consumer: host viewer
