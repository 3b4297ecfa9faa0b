//go:build unix

package transport

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// listen creates an IPv4 listening socket by hand, as the net package neither lets us
// choose the backlog nor does it guarantee SO_REUSEADDR on every platform.
func listen(host string, port uint16, backlog int) (net.Listener, error) {
	addr, err := sockaddr(host, port)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}

	unix.CloseOnExec(fd)

	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("setsockopt", err)
	}

	if err = unix.Bind(fd, addr); err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("bind", err)
	}

	if err = unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("listen", err)
	}

	file := os.NewFile(uintptr(fd), fmt.Sprintf("tcp4:%d", port))
	// FileListener duplicates the descriptor, so ours must be released either way
	defer file.Close()

	return net.FileListener(file)
}

func sockaddr(host string, port uint16) (*unix.SockaddrInet4, error) {
	addr := &unix.SockaddrInet4{Port: int(port)}
	if len(host) == 0 {
		return addr, nil
	}

	ip, err := net.ResolveIPAddr("ip4", host)
	if err != nil {
		return nil, err
	}

	copy(addr.Addr[:], ip.IP.To4())

	return addr, nil
}
