package parser

import (
	"bytes"

	"github.com/indigo-web/utils/uf"

	"github.com/indigo-web/webpool/http"
	"github.com/indigo-web/webpool/http/status"
)

// Result is either a fully valid request or the reason it's malformed, never both.
type Result struct {
	request *http.Request
	reason  error
}

func Ok(request *http.Request) Result {
	return Result{request: request}
}

func Malformed(reason error) Result {
	return Result{reason: reason}
}

// Ok reports whether the request was parsed successfully.
func (r Result) Ok() bool {
	return r.reason == nil
}

// Request returns the parsed request. It's nil if the result is malformed.
func (r Result) Request() *http.Request {
	return r.request
}

// Reason returns the status.HTTPError describing why the request is malformed, or nil.
func (r Result) Reason() error {
	return r.reason
}

// Parse parses a request read in a single pass. The grammar is:
//
//	METHOD SP PATH SP VERSION CRLF
//	*(Name: Value CRLF)
//	CRLF
//	body
//
// Lines without a colon in the headers section are skipped. Bare LF is accepted as a line
// terminator. Everything after the blank line is taken as the body as is.
//
// Returned strings reference data, so it must not be modified while the request is in use.
func Parse(data []byte) Result {
	result, _ := parse(data)
	return result
}

// ParseLimited behaves like Parse, but the data is additionally known to be read into a
// buffer of limit bytes. If the buffer was filled up completely and the headers section
// isn't terminated within it, the request is too large to be handled and is reported
// malformed instead of parsing the truncated prefix.
func ParseLimited(data []byte, limit int) Result {
	result, terminated := parse(data)
	if !terminated && len(data) >= limit {
		return Malformed(status.ErrRequestTooLarge)
	}

	return result
}

func parse(data []byte) (result Result, terminated bool) {
	if len(data) == 0 {
		return Malformed(status.ErrEmptyRequest), false
	}

	line, rest, found := cutLine(data)
	request, err := parseRequestLine(line)
	if err != nil {
		return Malformed(err), found && headersTerminated(rest)
	}

	if !found {
		return Ok(request), false
	}

	for {
		line, rest, found = cutLine(rest)
		if len(line) == 0 && found {
			request.Body = rest
			return Ok(request), true
		}

		if !found {
			// the data ended in the middle of the headers section
			parseHeader(request, line)
			return Ok(request), false
		}

		parseHeader(request, line)
	}
}

func parseRequestLine(line []byte) (*http.Request, error) {
	method, line, ok := bytes.Cut(line, []byte{' '})
	if !ok {
		return nil, status.ErrBadRequestLine
	}

	path, proto, ok := bytes.Cut(line, []byte{' '})
	if !ok || len(method) == 0 || len(path) == 0 || len(proto) == 0 ||
		bytes.IndexByte(proto, ' ') != -1 {
		return nil, status.ErrBadRequestLine
	}

	if path[0] != '/' {
		return nil, status.ErrBadPath
	}

	request := http.NewRequest()
	request.Method = uf.B2S(method)
	request.Proto = uf.B2S(proto)

	if query := bytes.IndexByte(path, '?'); query != -1 {
		request.Query = uf.B2S(path[query+1:])
		path = path[:query]
	}

	request.Path = uf.B2S(path)

	return request, nil
}

func parseHeader(request *http.Request, line []byte) {
	key, value, ok := bytes.Cut(line, []byte{':'})
	if !ok {
		return
	}

	key = bytes.TrimSpace(key)
	if len(key) == 0 {
		return
	}

	request.Headers.Add(uf.B2S(key), uf.B2S(bytes.TrimSpace(value)))
}

// cutLine returns the first line without its terminator. found reports whether the
// terminator was met at all.
func cutLine(data []byte) (line, rest []byte, found bool) {
	lf := bytes.IndexByte(data, '\n')
	if lf == -1 {
		return data, nil, false
	}

	return bytes.TrimSuffix(data[:lf], []byte{'\r'}), data[lf+1:], true
}

func headersTerminated(data []byte) bool {
	for {
		line, rest, found := cutLine(data)
		if !found {
			return false
		}

		if len(line) == 0 {
			return true
		}

		data = rest
	}
}
