// Package sink provides byte sinks carrying telemetry packages to the host
// over real transports.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/url"

	"github.com/sigview/sigview.go/pkg/telemetry"
)

// Sink is a blocking byte sink with an explicit package boundary. Write
// receives the package bytes in strict order; Flush is called once after the
// last byte and marks the end of the package.
type Sink interface {
	io.Writer
	Flush() error
}

// Send writes one package for module to the sink and flushes it.
func Send(s Sink, module string, m *telemetry.Map) error {
	if err := telemetry.WritePackage(s, module, m); err != nil {
		return err
	}
	return s.Flush()
}

// Buffered wraps a stream writer into a Sink using a bufio.Writer.
func Buffered(w io.Writer) Sink {
	return bufio.NewWriter(w)
}

// Open creates a Sink from a URL:
//
//	serial:///dev/ttyUSB0?baud=115200
//	tcp://host:port
//	mqtt://host:port/topic
//	ws://host:port/path
func Open(rawurl string) (Sink, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("invalid sink URL: %v", err)
	}
	switch u.Scheme {
	case "serial":
		return OpenSerial(u)
	case "tcp":
		conn, err := net.Dial("tcp", u.Host)
		if err != nil {
			return nil, err
		}
		return Buffered(conn), nil
	case "mqtt":
		return OpenMQTT(rawurl)
	case "ws", "wss":
		return OpenWebsocket(rawurl)
	default:
		return nil, fmt.Errorf("unknown sink URL scheme: %q", u.Scheme)
	}
}
