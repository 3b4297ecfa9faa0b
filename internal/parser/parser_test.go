package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/require"

	"github.com/indigo-web/webpool/http/status"
)

func TestParse(t *testing.T) {
	t.Run("simple GET", func(t *testing.T) {
		result := Parse([]byte("GET / HTTP/1.1\r\n\r\n"))
		require.True(t, result.Ok())
		require.NoError(t, result.Reason())
		request := result.Request()
		require.Equal(t, "GET", request.Method)
		require.Equal(t, "/", request.Path)
		require.Equal(t, "HTTP/1.1", request.Proto)
		require.Zero(t, request.Headers.Len())
		require.Empty(t, request.Body)
	})

	t.Run("headers", func(t *testing.T) {
		raw := "GET /about HTTP/1.1\r\nHost: x\r\nAccept:  text/html \r\nhost: y\r\n\r\n"
		result := Parse([]byte(raw))
		require.True(t, result.Ok())
		request := result.Request()
		require.Equal(t, "/about", request.Path)
		require.Equal(t, "x", request.Headers.Value("HOST"))
		require.Equal(t, "text/html", request.Headers.Value("accept"))
		require.Equal(t, 3, request.Headers.Len())
	})

	t.Run("many random headers", func(t *testing.T) {
		var (
			builder strings.Builder
			keys    []string
		)

		builder.WriteString("GET / HTTP/1.1\r\n")
		for range 20 {
			key := uniuri.New()
			keys = append(keys, key)
			builder.WriteString(fmt.Sprintf("%s: some value\r\n", key))
		}
		builder.WriteString("\r\n")

		result := Parse([]byte(builder.String()))
		require.True(t, result.Ok())
		for _, key := range keys {
			require.Equal(t, "some value", result.Request().Headers.Value(strings.ToLower(key)))
		}
	})

	t.Run("body", func(t *testing.T) {
		raw := "POST /submit HTTP/1.1\r\nContent-Length: 100\r\n\r\nHello, world!"
		result := Parse([]byte(raw))
		require.True(t, result.Ok())
		require.Equal(t, "POST", result.Request().Method)
		// the body is taken as is, no matter what the Content-Length says
		require.Equal(t, "Hello, world!", string(result.Request().Body))
	})

	t.Run("query", func(t *testing.T) {
		result := Parse([]byte("GET /status?verbose=1 HTTP/1.1\r\n\r\n"))
		require.True(t, result.Ok())
		require.Equal(t, "/status", result.Request().Path)
		require.Equal(t, "verbose=1", result.Request().Query)
	})

	t.Run("bare LF", func(t *testing.T) {
		result := Parse([]byte("GET / HTTP/1.0\nHost: x\n\nbody"))
		require.True(t, result.Ok())
		require.Equal(t, "HTTP/1.0", result.Request().Proto)
		require.Equal(t, "x", result.Request().Headers.Value("Host"))
		require.Equal(t, "body", string(result.Request().Body))
	})

	t.Run("header without colon is skipped", func(t *testing.T) {
		result := Parse([]byte("GET / HTTP/1.1\r\nGarbage line\r\nHost: x\r\n: no-key\r\n\r\n"))
		require.True(t, result.Ok())
		require.Equal(t, 1, result.Request().Headers.Len())
		require.Equal(t, "x", result.Request().Headers.Value("Host"))
	})

	t.Run("unknown method", func(t *testing.T) {
		result := Parse([]byte("BREW /pot HTCPCP/1.0\r\n\r\n"))
		require.True(t, result.Ok())
		require.Equal(t, "BREW", result.Request().Method)
	})

	t.Run("unterminated headers", func(t *testing.T) {
		result := Parse([]byte("GET / HTTP/1.1\r\nHost: x"))
		require.True(t, result.Ok())
		require.Equal(t, "x", result.Request().Headers.Value("Host"))
	})

	t.Run("request line only", func(t *testing.T) {
		result := Parse([]byte("GET / HTTP/1.1"))
		require.True(t, result.Ok())
		require.Equal(t, "HTTP/1.1", result.Request().Proto)
	})
}

func TestParse_Malformed(t *testing.T) {
	for name, tc := range map[string]struct {
		raw    string
		reason error
	}{
		"empty":              {"", status.ErrEmptyRequest},
		"single token":       {"BADREQUEST\r\n\r\n", status.ErrBadRequestLine},
		"two tokens":         {"GET /\r\n\r\n", status.ErrBadRequestLine},
		"four tokens":        {"GET / HTTP/1.1 extra\r\n\r\n", status.ErrBadRequestLine},
		"double space":       {"GET  / HTTP/1.1\r\n\r\n", status.ErrBadRequestLine},
		"empty method":       {" / HTTP/1.1\r\n\r\n", status.ErrBadRequestLine},
		"empty proto":        {"GET / \r\n\r\n", status.ErrBadRequestLine},
		"relative path":      {"GET index.html HTTP/1.1\r\n\r\n", status.ErrBadPath},
		"absolute-form path": {"GET http://x/ HTTP/1.1\r\n\r\n", status.ErrBadPath},
		"blank request line": {"\r\n\r\n", status.ErrBadRequestLine},
	} {
		t.Run(name, func(t *testing.T) {
			result := Parse([]byte(tc.raw))
			require.False(t, result.Ok())
			require.Nil(t, result.Request())
			require.ErrorIs(t, result.Reason(), tc.reason)
			require.Equal(t, status.BadRequest, status.CodeOf(result.Reason()))
		})
	}
}

func TestParseLimited(t *testing.T) {
	const limit = 64

	t.Run("fits", func(t *testing.T) {
		result := ParseLimited([]byte("GET / HTTP/1.1\r\n\r\n"), limit)
		require.True(t, result.Ok())
	})

	t.Run("full buffer with terminated head", func(t *testing.T) {
		raw := "POST / HTTP/1.1\r\n\r\n"
		raw += strings.Repeat("a", limit-len(raw))
		result := ParseLimited([]byte(raw), limit)
		require.True(t, result.Ok())
		require.Len(t, result.Request().Body, limit-len("POST / HTTP/1.1\r\n\r\n"))
	})

	t.Run("full buffer with truncated head", func(t *testing.T) {
		raw := "GET / HTTP/1.1\r\nX-Long: " + strings.Repeat("a", limit)
		result := ParseLimited([]byte(raw[:limit]), limit)
		require.False(t, result.Ok())
		require.ErrorIs(t, result.Reason(), status.ErrRequestTooLarge)
	})

	t.Run("full buffer with truncated request line", func(t *testing.T) {
		raw := "GET /" + strings.Repeat("a", limit)
		result := ParseLimited([]byte(raw[:limit]), limit)
		require.False(t, result.Ok())
		require.ErrorIs(t, result.Reason(), status.ErrRequestTooLarge)
	})

	t.Run("short unterminated head is lenient", func(t *testing.T) {
		result := ParseLimited([]byte("GET / HTTP/1.1\r\nHost: x"), limit)
		require.True(t, result.Ok())
	})
}
