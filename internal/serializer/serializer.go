package serializer

import (
	"strconv"

	"github.com/indigo-web/utils/uf"

	"github.com/indigo-web/webpool/http"
	"github.com/indigo-web/webpool/http/status"
)

const (
	crlf            = "\r\n"
	contentType     = "Content-Type: "
	contentLength   = "Content-Length: "
	server          = "Server: "
	connectionClose = "Connection: close"
)

// Serializer renders responses into their wire representation. Every response carries
// the Content-Type, Content-Length, Server and Connection: close headers, in that order.
type Serializer struct {
	buff       []byte
	serverName string
}

func New(buff []byte, serverName string) *Serializer {
	return &Serializer{
		buff:       buff[:0],
		serverName: serverName,
	}
}

// Render returns the serialized response. The returned slice is valid until the next call.
func (s *Serializer) Render(response *http.Response) []byte {
	fields := response.Reveal()
	buff := s.buff[:0]

	buff = append(buff, status.Line(fields.Code)...)
	buff = append(buff, crlf...)

	ctype := fields.ContentType
	if len(ctype) == 0 {
		ctype = http.DefaultContentType
	}

	buff = append(append(append(buff, contentType...), ctype...), crlf...)
	buff = append(buff, contentLength...)
	buff = strconv.AppendInt(buff, int64(len(fields.Body)), 10)
	buff = append(buff, crlf...)
	buff = append(append(append(buff, server...), s.serverName...), crlf...)
	buff = append(buff, connectionClose+crlf+crlf...)
	buff = append(buff, fields.Body...)
	s.buff = buff

	return buff
}

// String is a convenience wrapper mostly used for debugging and tests.
func (s *Serializer) String(response *http.Response) string {
	return uf.B2S(s.Render(response))
}
