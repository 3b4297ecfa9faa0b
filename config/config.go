package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/indigo-web/webpool/internal/workerpool"
)

type (
	NET struct {
		// Host is the address to bind to. Empty string means all the local interfaces.
		Host string `test:"nullable"`
		// Port is the listening port.
		Port uint16
		// Backlog is the size of the queue of pending connections the kernel keeps for us.
		Backlog int
		// ReadBufferSize is a size of buffer in bytes which will be used to read the request
		// from socket. The request is read in a single pass, so this is also the maximal size
		// of a request head.
		ReadBufferSize int
	}

	Workers struct {
		// Count is the number of workers handling connections. Defaults to the detected
		// hardware parallelism.
		Count int
	}

	Static struct {
		// Root is the directory all servable files must resolve within.
		Root string
	}

	Server struct {
		// Name is the value of the Server header included into every response.
		Name string
	}
)

// Config holds settings used across the server. Always start from Default() and modify
// the returned value instead of initializing the config manually.
type Config struct {
	NET     NET
	Workers Workers
	Static  Static
	Server  Server
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			Port:           8080,
			Backlog:        10,
			ReadBufferSize: 4096,
		},
		Workers: Workers{
			Count: workerpool.DefaultSize(),
		},
		Static: Static{
			Root: "./public",
		},
		Server: Server{
			Name: "CustomHTTPServer/1.0",
		},
	}
}

// Addr returns the address suitable for binding.
func (c *Config) Addr() string {
	return c.NET.Host + ":" + strconv.Itoa(int(c.NET.Port))
}

var (
	ErrBadBacklog    = errors.New("backlog must be positive")
	ErrBadReadBuffer = errors.New("read buffer size must be positive")
	ErrBadWorkers    = errors.New("workers count must not be negative")
	ErrNoStaticRoot  = errors.New("static root must not be empty")
)

// Validate checks the config for values the server can't work with.
func (c *Config) Validate() error {
	switch {
	case c.NET.Backlog <= 0:
		return fmt.Errorf("%w: %d", ErrBadBacklog, c.NET.Backlog)
	case c.NET.ReadBufferSize <= 0:
		return fmt.Errorf("%w: %d", ErrBadReadBuffer, c.NET.ReadBufferSize)
	case c.Workers.Count < 0:
		return fmt.Errorf("%w: %d", ErrBadWorkers, c.Workers.Count)
	case len(c.Static.Root) == 0:
		return ErrNoStaticRoot
	}

	return nil
}
