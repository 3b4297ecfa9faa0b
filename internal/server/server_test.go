package server

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/indigo-web/webpool/config"
	"github.com/indigo-web/webpool/http"
	"github.com/indigo-web/webpool/http/status"
	"github.com/indigo-web/webpool/router/inbuilt"
	"github.com/indigo-web/webpool/transport/dummy"
)

type logRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (l *logRecorder) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, format)
}

func (l *logRecorder) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}

	return false
}

func getServer(cfg *config.Config, logger Logger) (*Server, *[]State) {
	r := inbuilt.New().
		Logger(logger).
		Route("/", func(*http.Request) (*http.Response, error) {
			return http.NewResponse().String("Hello, world!"), nil
		}).
		Route("/fail", func(*http.Request) (*http.Response, error) {
			return nil, errors.New("no luck")
		})
	r.Freeze()

	var (
		mu     sync.Mutex
		states []State
	)
	srv := New(cfg, r, logger).OnStateChange(func(_ string, state State) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
	})

	return srv, &states
}

// splitResponse returns the status line, headers and the body.
func splitResponse(t *testing.T, data []byte) (string, []string, string) {
	head, body, found := bytes.Cut(data, []byte("\r\n\r\n"))
	require.True(t, found, "response has no headers terminator")
	lines := strings.Split(string(head), "\r\n")

	return lines[0], lines[1:], string(body)
}

func TestServer(t *testing.T) {
	cfg := config.Default()

	t.Run("200", func(t *testing.T) {
		srv, states := getServer(cfg, &logRecorder{})
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\nHost: localhost\r\n\r\n"))
		srv.Serve(conn)

		line, headers, body := splitResponse(t, conn.Written())
		require.Equal(t, "HTTP/1.1 200 OK", line)
		require.Equal(t, []string{
			"Content-Type: text/html",
			"Content-Length: 13",
			"Server: CustomHTTPServer/1.0",
			"Connection: close",
		}, headers)
		require.Equal(t, "Hello, world!", body)
		require.Equal(t, 1, conn.Closed())
		require.Equal(t, []State{Accepted, Reading, Parsed, Routed, Responding, Closed}, *states)
	})

	t.Run("query is not a part of the path", func(t *testing.T) {
		srv, _ := getServer(cfg, &logRecorder{})
		conn := dummy.NewConn([]byte("GET /?a=b HTTP/1.1\r\n\r\n"))
		srv.Serve(conn)

		line, _, _ := splitResponse(t, conn.Written())
		require.Equal(t, "HTTP/1.1 200 OK", line)
	})

	t.Run("400", func(t *testing.T) {
		srv, states := getServer(cfg, &logRecorder{})
		conn := dummy.NewConn([]byte("BADREQUEST\r\n\r\n"))
		srv.Serve(conn)

		line, _, body := splitResponse(t, conn.Written())
		require.Equal(t, "HTTP/1.1 400 Bad Request", line)
		require.Contains(t, body, "400 Bad Request")
		require.Equal(t, 1, conn.Closed())
		require.Equal(t, []State{Accepted, Reading, Malformed, Routed, Responding, Closed}, *states)
	})

	t.Run("404", func(t *testing.T) {
		srv, _ := getServer(cfg, &logRecorder{})
		conn := dummy.NewConn([]byte("GET /nothing-here HTTP/1.1\r\n\r\n"))
		srv.Serve(conn)

		line, _, body := splitResponse(t, conn.Written())
		require.Equal(t, "HTTP/1.1 404 Not Found", line)
		require.Contains(t, body, "404 Not Found")
	})

	t.Run("500", func(t *testing.T) {
		logger := &logRecorder{}
		srv, _ := getServer(cfg, logger)
		conn := dummy.NewConn([]byte("GET /fail HTTP/1.1\r\n\r\n"))
		srv.Serve(conn)

		line, headers, body := splitResponse(t, conn.Written())
		require.Equal(t, "HTTP/1.1 500 Internal Server Error", line)
		require.Contains(t, headers, "Content-Length: "+strconv.Itoa(len(body)))
		require.Equal(t, 1, conn.Closed())
		require.True(t, logger.contains("failed"))
	})

	t.Run("empty read", func(t *testing.T) {
		srv, states := getServer(cfg, &logRecorder{})
		conn := dummy.NewConn()
		srv.Serve(conn)

		require.Empty(t, conn.Written())
		require.Equal(t, 1, conn.Closed())
		require.Equal(t, []State{Accepted, Reading, Closed}, *states)
	})

	t.Run("read error", func(t *testing.T) {
		logger := &logRecorder{}
		srv, _ := getServer(cfg, logger)
		conn := dummy.NewConn().FailReads(errors.New("connection reset"))
		srv.Serve(conn)

		require.Empty(t, conn.Written())
		require.Equal(t, 1, conn.Closed())
		require.True(t, logger.contains("read failed"))
	})

	t.Run("write error", func(t *testing.T) {
		logger := &logRecorder{}
		srv, _ := getServer(cfg, logger)
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\n\r\n")).FailWrites()
		srv.Serve(conn)

		require.Equal(t, 1, conn.Closed())
		require.True(t, logger.contains("write failed"))
	})

	t.Run("request head larger than the buffer", func(t *testing.T) {
		small := config.Default()
		small.NET.ReadBufferSize = 32
		srv, _ := getServer(small, &logRecorder{})
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\nX-Long-Header: " + strings.Repeat("a", 64) + "\r\n\r\n"))
		srv.Serve(conn)

		line, _, _ := splitResponse(t, conn.Written())
		require.Equal(t, "HTTP/1.1 400 Bad Request", line)
	})

	t.Run("only a single read is done", func(t *testing.T) {
		srv, _ := getServer(cfg, &logRecorder{})
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\n"), []byte("Host: localhost\r\n\r\n"))
		srv.Serve(conn)

		line, _, _ := splitResponse(t, conn.Written())
		require.Equal(t, "HTTP/1.1 200 OK", line)
	})
}

type nilRouter struct{}

func (nilRouter) OnRequest(*http.Request) *http.Response { return nil }

func (nilRouter) OnError(*http.Request, error) *http.Response { return nil }

func TestServer_NilResponses(t *testing.T) {
	srv := New(config.Default(), nilRouter{}, &logRecorder{})

	for _, request := range []string{"GET / HTTP/1.1\r\n\r\n", "garbage\r\n\r\n"} {
		conn := dummy.NewConn([]byte(request))
		srv.Serve(conn)
		require.True(t, bytes.HasPrefix(conn.Written(), []byte("HTTP/1.1 200 OK\r\n")))
		require.Equal(t, 1, conn.Closed())
	}
}

// panickingRouter panics on every request, and on errors too if asked to.
type panickingRouter struct {
	onError bool
}

func (panickingRouter) OnRequest(*http.Request) *http.Response {
	panic("routing exploded")
}

func (p panickingRouter) OnError(_ *http.Request, err error) *http.Response {
	if p.onError {
		panic("error page exploded")
	}

	return http.NewResponse().Code(status.CodeOf(err)).String("error page")
}

func TestServer_PanickingRouter(t *testing.T) {
	t.Run("falls back to the error page", func(t *testing.T) {
		logger := &logRecorder{}
		srv := New(config.Default(), panickingRouter{}, logger)
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\n\r\n"))
		srv.Serve(conn)

		line, headers, body := splitResponse(t, conn.Written())
		require.Equal(t, "HTTP/1.1 500 Internal Server Error", line)
		require.Contains(t, headers, "Content-Length: "+strconv.Itoa(len(body)))
		require.Equal(t, "error page", body)
		require.Equal(t, 1, conn.Closed())
		require.True(t, logger.contains("router panicked"))
	})

	t.Run("error page panics too", func(t *testing.T) {
		srv := New(config.Default(), panickingRouter{onError: true}, &logRecorder{})

		for _, request := range []string{"GET / HTTP/1.1\r\n\r\n", "garbage\r\n\r\n"} {
			conn := dummy.NewConn([]byte(request))
			srv.Serve(conn)

			line, headers, body := splitResponse(t, conn.Written())
			require.Equal(t, "HTTP/1.1 500 Internal Server Error", line)
			require.Contains(t, headers, "Content-Type: text/plain")
			require.Equal(t, "Internal Server Error", body)
			require.Equal(t, 1, conn.Closed())
		}
	})
}
