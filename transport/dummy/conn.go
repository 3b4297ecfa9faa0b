package dummy

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"
)

var ErrWriteFailed = errors.New("dummy: write failed")

// Conn is an in-memory net.Conn. Reads return the chunks it was initialised with one by
// one and io.EOF afterwards, writes are recorded.
type Conn struct {
	mu         sync.Mutex
	chunks     [][]byte
	written    []byte
	closed     int
	failWrites bool
	readErr    error
}

func NewConn(chunks ...[]byte) *Conn {
	return &Conn{chunks: chunks}
}

// FailWrites makes every following write return ErrWriteFailed.
func (c *Conn) FailWrites() *Conn {
	c.failWrites = true
	return c
}

// FailReads makes every read return the error.
func (c *Conn) FailReads(err error) *Conn {
	c.readErr = err
	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.readErr != nil {
		return 0, c.readErr
	}

	if c.closed > 0 {
		return 0, net.ErrClosed
	}

	if len(c.chunks) == 0 {
		return 0, io.EOF
	}

	n = copy(b, c.chunks[0])
	if n < len(c.chunks[0]) {
		c.chunks[0] = c.chunks[0][n:]
	} else {
		c.chunks = c.chunks[1:]
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failWrites {
		return 0, ErrWriteFailed
	}

	c.written = append(c.written, b...)

	return len(b), nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	c.closed++
	c.mu.Unlock()

	return nil
}

// Written returns everything written into the connection so far.
func (c *Conn) Written() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]byte(nil), c.written...)
}

// Closed returns how many times Close was called.
func (c *Conn) Closed() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 54321}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}
