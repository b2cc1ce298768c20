package sink

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/tarm/serial"
)

// DefaultBaud is used when the serial URL carries no baud parameter.
const DefaultBaud = 115200

// Serial is a Sink writing to a serial port.
type Serial struct {
	Port *serial.Port
}

// OpenSerial opens a serial port from a URL of the form
// serial:///dev/ttyUSB0?baud=115200.
func OpenSerial(u *url.URL) (*Serial, error) {
	baud := DefaultBaud
	if val := u.Query().Get("baud"); val != "" {
		b, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid baud %q: %v", val, err)
		}
		baud = b
	}
	port, err := serial.OpenPort(&serial.Config{Name: u.Path, Baud: baud})
	if err != nil {
		return nil, err
	}
	return &Serial{Port: port}, nil
}

// Write implements io.Writer.
func (s *Serial) Write(b []byte) (int, error) {
	return s.Port.Write(b)
}

// Flush implements Sink. Port writes are unbuffered, so there is nothing to
// push out. The port's own Flush discards pending bytes and must not be
// called here.
func (s *Serial) Flush() error {
	return nil
}

// Close implements io.Closer.
func (s *Serial) Close() error {
	return s.Port.Close()
}
