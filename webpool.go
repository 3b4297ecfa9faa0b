package webpool

import (
	"fmt"
	"log"
	"net"
	"sync/atomic"

	"github.com/indigo-web/webpool/config"
	"github.com/indigo-web/webpool/internal/server"
	"github.com/indigo-web/webpool/internal/workerpool"
	"github.com/indigo-web/webpool/router"
	"github.com/indigo-web/webpool/transport"
)

type Logger interface {
	Printf(format string, v ...any)
}

// App binds the listening socket, accepts connections and hands every one of them over to
// the worker pool. Each connection carries exactly one request.
type App struct {
	cfg     *config.Config
	hooks   hooks
	logger  Logger
	tcp     *transport.TCP
	pool    atomic.Pointer[workerpool.Pool[net.Conn]]
	stopped atomic.Bool
}

// New returns a new App instance. Nil config means config.Default().
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	logger := log.Default()

	return &App{
		cfg:    cfg,
		logger: logger,
		tcp:    transport.NewTCP(cfg.NET.Backlog, logger),
	}
}

// Logger replaces the logger used by the app and all of its components.
func (a *App) Logger(logger Logger) *App {
	a.logger = logger
	a.tcp = transport.NewTCP(a.cfg.NET.Backlog, logger)
	return a
}

// NotifyOnStart calls the callback once the socket is bound and the workers are started.
// The app is able to accept connections at the moment.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback after every queued connection is processed and all the
// workers exited.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve starts the web-application and blocks until it is stopped. If nil is passed instead
// of a router, DefaultRouter is used. Startup failures are returned immediately.
func (a *App) Serve(r router.Router) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("webpool: %w", err)
	}

	if r == nil {
		r = a.DefaultRouter()
	}

	if frozen, ok := r.(interface{ Freeze() }); ok {
		frozen.Freeze()
	}

	if err := a.tcp.Bind(a.cfg.Addr()); err != nil {
		return fmt.Errorf("webpool: %w", err)
	}

	if a.stopped.Load() {
		a.tcp.Close()
		return nil
	}

	pool := workerpool.New[net.Conn](a.cfg.Workers.Count, a.logger)
	a.pool.Store(pool)
	srv := server.New(a.cfg, r, a.logger)

	a.logger.Printf("webpool: listening on %s with %d workers", a.tcp.Addr(), pool.Stats().Workers)
	callIfNotNil(a.hooks.OnStart)

	err := a.tcp.Listen(func(conn net.Conn) {
		task := workerpool.Task[net.Conn]{
			Value: conn,
			Run:   srv.Serve,
		}

		if err := pool.Enqueue(task); err != nil {
			a.logger.Printf("webpool: dropping connection from %s: %s", conn.RemoteAddr(), err)
			_ = conn.Close()
		}
	})

	pool.Shutdown()
	stats := pool.Stats()
	a.logger.Printf(
		"webpool: stopped. Connections served: %d, failed: %d",
		stats.Completed, stats.Failed,
	)
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop stops accepting new connections. Connections already queued are still processed.
//
// NOTE: the call isn't blocking. Serve returns once the queue is drained.
func (a *App) Stop() {
	a.stopped.Store(true)
	a.tcp.Stop()
}

// Addr returns the address the app is bound to, or nil if it isn't bound yet.
func (a *App) Addr() net.Addr {
	return a.tcp.Addr()
}

// Port returns the actually bound port, falling back to the configured one.
func (a *App) Port() uint16 {
	if addr, ok := a.Addr().(*net.TCPAddr); ok {
		return uint16(addr.Port)
	}

	return a.cfg.NET.Port
}

// Stats returns the worker pool statistics. The zero value is returned before the app
// is started.
func (a *App) Stats() workerpool.Stats {
	if pool := a.pool.Load(); pool != nil {
		return pool.Stats()
	}

	return workerpool.Stats{}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
