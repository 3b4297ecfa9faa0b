package http

import (
	"github.com/indigo-web/webpool/http/headers"
)

// Request represents a single parsed HTTP request. It is produced by the parser only when
// the request line is well-formed, so all the start-line fields are always populated.
type Request struct {
	// Method is the request method token as sent by the client. Unknown methods aren't rejected.
	Method string
	// Path always starts with a slash and never contains the query.
	Path string
	// Query is the raw string after the first '?', if any.
	Query string
	// Proto is the protocol version token, e.g. HTTP/1.1.
	Proto string
	// Headers holds non-normalized header pairs, even though lookup is case-insensitive.
	Headers *headers.Headers
	// Body is whatever followed the headers section in the read buffer. It isn't validated
	// against the Content-Length.
	Body []byte
}

// NewRequest returns an empty request with an empty headers storage.
func NewRequest() *Request {
	return &Request{
		Headers: headers.New(),
	}
}
