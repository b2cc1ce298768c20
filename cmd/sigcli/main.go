package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/sigview/sigview.go/pkg/monitor"
	"github.com/sigview/sigview.go/pkg/sink"
	"github.com/sigview/sigview.go/pkg/telemetry"
)

var (
	module      = monitor.DefaultModule()
	capacity    = 32
	packageSize = 10
	sinkURL     string

	values *telemetry.Map
	out    sink.Sink
)

func init() {
	flag.StringVar(&module, "module", module, "Module name carried in packages.")
	flag.IntVar(&capacity, "n", capacity, "Max number of signals.")
	flag.IntVar(&packageSize, "p", packageSize, "Samples per signal per package.")
	flag.StringVar(&sinkURL, "sink", sinkURL, "Sink URL to open on start.")
}

func setValue(c *ishell.Context) {
	if len(c.Args) != 3 {
		c.Err(fmt.Errorf("usage: set NAME bool|int|float|pulse VALUE"))
		return
	}
	name, kind, val := c.Args[0], c.Args[1], c.Args[2]
	var err error
	switch kind {
	case "bool", "pulse":
		var v bool
		if v, err = strconv.ParseBool(val); err == nil {
			if kind == "pulse" {
				err = values.SetPulse(name, v)
			} else {
				err = values.SetBool(name, v)
			}
		}
	case "int":
		var v int64
		if v, err = strconv.ParseInt(val, 0, 32); err == nil {
			err = values.SetInt(name, int32(v))
		}
	case "float":
		var v float64
		if v, err = strconv.ParseFloat(val, 32); err == nil {
			err = values.SetFloat(name, float32(v))
		}
	default:
		err = fmt.Errorf("unknown type %q", kind)
	}
	if err != nil {
		c.Err(err)
	}
}

func tick(c *ishell.Context) {
	count := 1
	if len(c.Args) > 0 {
		var err error
		if count, err = strconv.Atoi(c.Args[0]); err != nil {
			c.Err(err)
			return
		}
	}
	flushes := 0
	for i := 0; i < count; i++ {
		values.Tick(func(m *telemetry.Map) {
			flushes++
			if out == nil {
				return
			}
			if err := sink.Send(out, module, m); err != nil {
				c.Err(err)
			}
		})
	}
	c.Printf("%d tick(s), %d package(s)\n", count, flushes)
}

func send(c *ishell.Context) {
	if out == nil {
		c.Err(fmt.Errorf("no sink open"))
		return
	}
	if err := sink.Send(out, module, values); err != nil {
		c.Err(err)
	}
}

func open(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Err(fmt.Errorf("usage: open URL"))
		return
	}
	s, err := sink.Open(c.Args[0])
	if err != nil {
		c.Err(err)
		return
	}
	out = s
	c.Printf("sink %s\n", c.Args[0])
}

func show(c *ishell.Context) {
	c.Printf("module %s, %d/%d signals, %d samples/package\n",
		module, values.Len(), capacity, values.PackageSize())
	values.Each(func(r *telemetry.Record) {
		c.Printf("  %-23s %-5s %v\n", r.Name(), r.Type(), r.Samples())
	})
}

func decode(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Err(fmt.Errorf("usage: decode HEX"))
		return
	}
	data, err := hex.DecodeString(c.Args[0])
	if err != nil {
		c.Err(err)
		return
	}
	parser := &telemetry.Parser{PackageSize: packageSize}
	found := 0
	for _, b := range data {
		if pkg := parser.Parse(b); pkg != nil {
			found++
			c.Printf("module %s\n", pkg.Module)
			for _, sig := range pkg.Signals {
				c.Printf("  %-23s %-5s %v\n", sig.Name, sig.Type, sig.Vals)
			}
		}
	}
	if found == 0 {
		c.Println("no complete package")
	}
}

func main() {
	flag.Parse()

	values = telemetry.NewMap(capacity, packageSize)
	if sinkURL != "" {
		s, err := sink.Open(sinkURL)
		if err != nil {
			log.Fatalln(err)
		}
		out = s
	}

	sh := ishell.New()
	sh.SetPrompt(module + " > ")
	sh.AddCmd(&ishell.Cmd{Name: "set", Help: "NAME bool|int|float|pulse VALUE", Func: setValue})
	sh.AddCmd(&ishell.Cmd{Name: "tick", Help: "[COUNT] advance the sample cursor", Func: tick})
	sh.AddCmd(&ishell.Cmd{Name: "send", Help: "emit one package now", Func: send})
	sh.AddCmd(&ishell.Cmd{Name: "open", Help: "URL open a sink", Func: open})
	sh.AddCmd(&ishell.Cmd{Name: "show", Help: "print the signal map", Func: show})
	sh.AddCmd(&ishell.Cmd{Name: "decode", Help: "HEX decode a captured package", Func: decode})

	if args := flag.Args(); len(args) > 0 {
		if err := sh.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	sh.Run()
}
