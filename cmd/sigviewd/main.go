package main

import (
	"flag"
	"log"

	"github.com/sigview/sigview.go/pkg/monitor"
)

var (
	conf       = monitor.NewConfig()
	configPath string
)

func init() {
	flag.StringVar(&configPath, "config", configPath, "Path to yaml config file.")
	flag.StringVar(&conf.SinkURL, "sink", conf.SinkURL, "Sink URL (serial/tcp/mqtt/ws).")
	flag.StringVar(&conf.Module, "module", conf.Module, "Module name carried in packages.")
	flag.IntVar(&conf.IntervalMs, "interval", conf.IntervalMs, "Sampling interval in milliseconds.")
	flag.IntVar(&conf.PackageSize, "package-size", conf.PackageSize, "Samples per signal per package.")
}

func main() {
	flag.Parse()

	if configPath != "" {
		if err := conf.Load(configPath); err != nil {
			log.Fatalln(err)
		}
	}
	mon, err := conf.NewMonitor()
	if err != nil {
		log.Fatalln(err)
	}
	mon.AddSource(monitor.RuntimeStats{})

	if err := monitor.NewRunner().HandleSignals().Go(mon).Wait(); err != nil {
		log.Fatalln(err)
	}
}
