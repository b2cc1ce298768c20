package monitor

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/denisbrodbeck/machineid"
	"gopkg.in/yaml.v2"

	"github.com/sigview/sigview.go/pkg/sink"
	"github.com/sigview/sigview.go/pkg/telemetry"
)

// Config holds the daemon configuration.
type Config struct {
	// Module is carried in every package so the host can route plots.
	// Defaults to an ID derived from the machine.
	Module string `yaml:"module"`
	// SinkURL selects the transport, see sink.Open.
	SinkURL string `yaml:"sink"`
	// IntervalMs is the sampling tick period.
	IntervalMs int `yaml:"intervalMs"`
	// PackageSize is the number of samples per signal in one package.
	// The host must be configured with the same value.
	PackageSize int `yaml:"packageSize"`
	// Capacity bounds the number of registered signals.
	Capacity int `yaml:"capacity"`
}

// NewConfig creates a Config with defaults, honoring SIGVIEW_SINK_URL.
func NewConfig() *Config {
	conf := &Config{
		SinkURL:     "tcp://localhost:9954",
		IntervalMs:  100,
		PackageSize: 10,
		Capacity:    32,
	}
	if val := os.Getenv("SIGVIEW_SINK_URL"); val != "" {
		conf.SinkURL = val
	}
	return conf
}

// Load reads a yaml config file over the defaults.
func (c *Config) Load(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %v", path, err)
	}
	return c.Validate()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.PackageSize < 1 {
		return fmt.Errorf("packageSize must be at least 1")
	}
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1")
	}
	if c.IntervalMs < 1 {
		return fmt.Errorf("intervalMs must be at least 1")
	}
	if c.Module != "" && !telemetry.ValidName(c.Module) {
		return fmt.Errorf("invalid module name %q", c.Module)
	}
	return nil
}

// NewMonitor builds a Monitor from the config, opening the sink.
func (c *Config) NewMonitor() (*Monitor, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	module := c.Module
	if module == "" {
		module = DefaultModule()
	}
	s, err := sink.Open(c.SinkURL)
	if err != nil {
		return nil, err
	}
	mon := New(module, telemetry.NewMap(c.Capacity, c.PackageSize), s)
	mon.Interval = time.Duration(c.IntervalMs) * time.Millisecond
	return mon, nil
}

// DefaultModule derives a module name from the machine ID, truncated to a
// valid name.
func DefaultModule() string {
	id, err := machineid.ID()
	if err != nil || id == "" {
		return "device"
	}
	if len(id) >= telemetry.NameMax {
		id = id[:telemetry.NameMax-1]
	}
	return id
}
