package transport

import (
	"net"
	"sync"

	"github.com/dchest/uniuri"
)

// Client owns an accepted connection for its whole lifetime.
type Client interface {
	Read() ([]byte, error)
	Write([]byte) error
	Remote() net.Addr
	ID() string
	Close() error
}

type client struct {
	conn     net.Conn
	buff     []byte
	id       string
	once     sync.Once
	closeErr error
}

func NewClient(conn net.Conn, buff []byte) Client {
	return &client{
		conn: conn,
		buff: buff,
		id:   uniuri.NewLen(8),
	}
}

// Read reads data into the internal buffer once and returns a piece of it back. The
// returned slice is valid until the next call.
func (c *client) Read() ([]byte, error) {
	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

// Write writes the whole data into the underlying connection.
func (c *client) Write(b []byte) error {
	_, err := c.conn.Write(b)
	return err
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// ID is a short random identifier used to correlate log lines of a single connection.
func (c *client) ID() string {
	return c.id
}

// Close closes the connection. Only the first call reaches the connection, the following
// ones return the same result.
func (c *client) Close() error {
	c.once.Do(func() {
		c.closeErr = c.conn.Close()
	})

	return c.closeErr
}
