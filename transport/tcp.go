package transport

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"sync/atomic"
	"time"
)

var ErrNotBound = errors.New("listener isn't bound")

type Logger interface {
	Printf(format string, v ...any)
}

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// TCP owns the listening socket and runs the accept loop. Accepted connections are handed
// over to the callback, which becomes responsible for closing them.
type TCP struct {
	l       net.Listener
	backlog int
	running atomic.Bool
	logger  Logger
}

// NewTCP returns an unbound acceptor. Nil logger means log.Default().
func NewTCP(backlog int, logger Logger) *TCP {
	if logger == nil {
		logger = log.Default()
	}

	return &TCP{
		backlog: backlog,
		logger:  logger,
	}
}

// Bind creates the listening socket on the address with address reuse enabled. Empty host
// binds to all the local interfaces. Errors are returned as is and never retried.
func (t *TCP) Bind(addr string) error {
	host, rawPort, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}

	port, err := strconv.ParseUint(rawPort, 10, 16)
	if err != nil {
		return fmt.Errorf("bind %s: bad port: %w", addr, err)
	}

	t.l, err = listen(host, uint16(port), t.backlog)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}

	t.running.Store(true)

	return nil
}

// Listen accepts connections until Stop is called. Accept failures are logged and the
// loop goes on, unless they are caused by the Stop, in which case nil is returned.
func (t *TCP) Listen(cb func(conn net.Conn)) error {
	if t.l == nil {
		return ErrNotBound
	}

	var backoff time.Duration

	for t.running.Load() {
		conn, err := t.l.Accept()
		if err != nil {
			if !t.running.Load() {
				return nil
			}

			if errors.Is(err, net.ErrClosed) {
				return err
			}

			backoff = nextBackoff(backoff)
			t.logger.Printf("accept: %s; retrying in %s", err, backoff)
			time.Sleep(backoff)
			continue
		}

		backoff = 0
		cb(conn)
	}

	return nil
}

// Stop marks the acceptor as stopped and closes the listener, which unblocks the pending
// Accept call. Safe to be called multiple times.
func (t *TCP) Stop() {
	if t.running.Swap(false) && t.l != nil {
		_ = t.l.Close()
	}
}

// Close releases the listener without going through Stop. Used when the acceptor was
// bound, but is never going to listen.
func (t *TCP) Close() {
	t.running.Store(false)

	if t.l != nil {
		_ = t.l.Close()
	}
}

// Addr returns the bound address, or nil if not bound.
func (t *TCP) Addr() net.Addr {
	if t.l == nil {
		return nil
	}

	return t.l.Addr()
}

func nextBackoff(current time.Duration) time.Duration {
	if current == 0 {
		return minAcceptBackoff
	}

	return min(current*2, maxAcceptBackoff)
}
