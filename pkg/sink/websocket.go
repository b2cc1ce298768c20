package sink

import (
	"bytes"

	"golang.org/x/net/websocket"
)

// Websocket is a Sink sending each package as one binary websocket message.
type Websocket struct {
	Conn *websocket.Conn

	buf bytes.Buffer
}

// OpenWebsocket dials the host viewer's websocket endpoint.
func OpenWebsocket(rawurl string) (*Websocket, error) {
	conn, err := websocket.Dial(rawurl, "", "http://localhost/")
	if err != nil {
		return nil, err
	}
	return &Websocket{Conn: conn}, nil
}

// Write implements io.Writer.
func (s *Websocket) Write(b []byte) (int, error) {
	return s.buf.Write(b)
}

// Flush sends the accumulated package as one message.
func (s *Websocket) Flush() error {
	payload := append([]byte(nil), s.buf.Bytes()...)
	s.buf.Reset()
	return websocket.Message.Send(s.Conn, payload)
}

// Close implements io.Closer.
func (s *Websocket) Close() error {
	return s.Conn.Close()
}
