//go:build !unix

package transport

import (
	"context"
	"net"
	"strconv"
)

// listen falls back to the net package. The backlog is chosen by the runtime here.
func listen(host string, port uint16, _ int) (net.Listener, error) {
	lc := net.ListenConfig{}
	return lc.Listen(context.Background(), "tcp4", net.JoinHostPort(host, strconv.Itoa(int(port))))
}
