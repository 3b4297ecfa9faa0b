package main

import (
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/indigo-web/webpool"
	"github.com/indigo-web/webpool/config"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %s", err)
	}

	var port uint
	flag.StringVar(&cfg.NET.Host, "host", cfg.NET.Host, "address to bind to, all interfaces if empty")
	flag.UintVar(&port, "port", uint(cfg.NET.Port), "port to listen on")
	flag.StringVar(&cfg.Static.Root, "root", cfg.Static.Root, "directory static files are served from")
	flag.IntVar(&cfg.Workers.Count, "workers", cfg.Workers.Count, "number of workers, hardware parallelism if 0")
	flag.IntVar(&cfg.NET.ReadBufferSize, "buffer", cfg.NET.ReadBufferSize, "read buffer size in bytes")
	flag.Parse()

	if port > 65535 {
		log.Fatalf("config: bad port: %d", port)
	}

	cfg.NET.Port = uint16(port)

	app := webpool.New(cfg).
		NotifyOnStart(func() {
			log.Printf("serving files from %s, press Ctrl+C to stop", cfg.Static.Root)
		})

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, shutdownSignals...)

	go func() {
		sig := <-sigC
		log.Printf("got %s, shutting down", sig)
		app.Stop()
	}()

	if err = app.Serve(nil); err != nil {
		log.Fatalf("webpool: %s", err)
	}
}
