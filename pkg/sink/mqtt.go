package sink

import (
	"bytes"
	"net/url"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Publisher is the slice of the MQTT client used by the sink. paho.Client
// satisfies it.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// MQTT is a Sink publishing each package as one MQTT message. Bytes are
// accumulated until Flush, which publishes the whole package to the topic.
type MQTT struct {
	Client Publisher
	Topic  string

	buf bytes.Buffer
}

// ClientOptionsFromURL creates ClientOptions and a topic from a URL of the
// form mqtt://host:port/topic.
func ClientOptionsFromURL(rawurl string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, "", err
	}
	server := "tcp://" + u.Host
	topic := strings.TrimPrefix(u.Path, "/")

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}
	return opts, topic, nil
}

// OpenMQTT connects a client and creates the sink.
func OpenMQTT(rawurl string) (*MQTT, error) {
	opts, topic, err := ClientOptionsFromURL(rawurl)
	if err != nil {
		return nil, err
	}
	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &MQTT{Client: client, Topic: topic}, nil
}

// Write implements io.Writer.
func (s *MQTT) Write(b []byte) (int, error) {
	return s.buf.Write(b)
}

// Flush publishes the accumulated package and waits for the broker.
// The buffer is dropped either way: the host will pick up the next package.
func (s *MQTT) Flush() error {
	payload := append([]byte(nil), s.buf.Bytes()...)
	s.buf.Reset()
	if glog.V(2) {
		glog.Infof("PUB %q (%d bytes)", s.Topic, len(payload))
	}
	token := s.Client.Publish(s.Topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

// Close disconnects the client if the sink owns one.
func (s *MQTT) Close() error {
	if client, ok := s.Client.(paho.Client); ok {
		client.Disconnect(0)
	}
	return nil
}
