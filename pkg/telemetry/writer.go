package telemetry

import (
	"encoding/binary"
	"io"
)

// PackageBytes returns the total wire size of a package for a map holding
// signals registered signals: markers, size field and payload.
func PackageBytes(signals, packageSize int) int {
	return len(beginMarker) + 4 + NameMax + RecordSize(packageSize)*signals + len(endMarker)
}

// WritePackage writes one framed package describing the map to w.
//
// Bytes are emitted in one strict order and earlier positions are never
// revisited, so w may be an unbuffered byte-at-a-time sink. On the first
// write error the already-written prefix stays on the wire; the host drops
// the broken package and resynchronizes on the next begin marker.
func WritePackage(w io.Writer, module string, m *Map) error {
	if !ValidName(module) {
		return ErrBadName
	}
	if _, err := io.WriteString(w, beginMarker); err != nil {
		return err
	}
	var buf [NameMax]byte
	fullSize := NameMax + RecordSize(m.pkgSize)*len(m.records)
	binary.LittleEndian.PutUint32(buf[:4], uint32(fullSize))
	if _, err := w.Write(buf[:4]); err != nil {
		return err
	}
	if err := writeName(w, &buf, module); err != nil {
		return err
	}
	for i := range m.records {
		if err := writeRecord(w, &buf, &m.records[i]); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, endMarker)
	return err
}

func writeRecord(w io.Writer, buf *[NameMax]byte, rec *Record) error {
	if err := writeName(w, buf, rec.name); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(buf[:4], uint32(rec.vtype))
	if _, err := w.Write(buf[:4]); err != nil {
		return err
	}
	for _, v := range rec.vals {
		binary.LittleEndian.PutUint32(buf[:4], uint32(v))
		if _, err := w.Write(buf[:4]); err != nil {
			return err
		}
	}
	return nil
}

// writeName emits name NUL-padded on the right to exactly NameMax bytes.
func writeName(w io.Writer, buf *[NameMax]byte, name string) error {
	n := copy(buf[:], name)
	for ; n < NameMax; n++ {
		buf[n] = 0
	}
	_, err := w.Write(buf[:])
	return err
}
