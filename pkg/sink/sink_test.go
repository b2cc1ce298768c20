package sink

import (
	"bytes"
	"testing"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"

	"github.com/sigview/sigview.go/pkg/telemetry"
)

func TestSend(t *testing.T) {
	m := telemetry.NewMap(2, 2)
	require.NoError(t, m.SetInt("a", 7))

	var buf bytes.Buffer
	require.NoError(t, Send(Buffered(&buf), "m", m))
	require.Equal(t, telemetry.PackageBytes(1, 2), buf.Len())

	pkg := parseAll(t, buf.Bytes(), 2)
	require.Len(t, pkg, 1)
	require.Equal(t, "m", pkg[0].Module)
}

func TestSendBadModule(t *testing.T) {
	m := telemetry.NewMap(1, 1)
	var buf bytes.Buffer
	require.Equal(t, telemetry.ErrBadName, Send(Buffered(&buf), "=end=", m))
}

type fakePublisher struct {
	topic    string
	payloads [][]byte
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	p.topic = topic
	p.payloads = append(p.payloads, payload.([]byte))
	return &paho.DummyToken{}
}

func TestMQTTSink(t *testing.T) {
	m := telemetry.NewMap(2, 1)
	require.NoError(t, m.SetBool("on", true))

	pub := &fakePublisher{}
	s := &MQTT{Client: pub, Topic: "scope/dev0"}
	require.NoError(t, Send(s, "dev0", m))
	require.NoError(t, Send(s, "dev0", m))

	require.Equal(t, "scope/dev0", pub.topic)
	require.Len(t, pub.payloads, 2)
	for _, payload := range pub.payloads {
		pkgs := parseAll(t, payload, 1)
		require.Len(t, pkgs, 1)
		require.Equal(t, "dev0", pkgs[0].Module)
		require.Equal(t, []int32{1}, pkgs[0].Get("on").Vals)
	}
}

func TestOpenUnknownScheme(t *testing.T) {
	_, err := Open("ftp://somewhere")
	require.Error(t, err)
}

func parseAll(t *testing.T, data []byte, packageSize int) []*telemetry.Package {
	t.Helper()
	parser := &telemetry.Parser{PackageSize: packageSize}
	var pkgs []*telemetry.Package
	for _, b := range data {
		if pkg := parser.Parse(b); pkg != nil {
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs
}
