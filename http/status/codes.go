package status

import "strconv"

type Code uint16

// Only the codes the server is able to produce are listed. The full IANA table lives in
// net/http, which isn't imported here to avoid name collisions with this package.
const (
	OK                  Code = 200 // RFC 9110, 15.3.1
	BadRequest          Code = 400 // RFC 9110, 15.5.1
	NotFound            Code = 404 // RFC 9110, 15.5.5
	InternalServerError Code = 500 // RFC 9110, 15.6.1
)

// KnownCodes enumerates every code from above.
var KnownCodes = []Code{OK, BadRequest, NotFound, InternalServerError}

// Text returns a reason phrase for the code. Unknown codes result in "Unknown Status".
func Text(code Code) string {
	switch code {
	case OK:
		return "OK"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case InternalServerError:
		return "Internal Server Error"
	default:
		return "Unknown Status"
	}
}

// Line returns the status line without the trailing CRLF, e.g. "HTTP/1.1 404 Not Found".
func Line(code Code) string {
	return "HTTP/1.1 " + strconv.Itoa(int(code)) + " " + Text(code)
}

// Message is a human-readable explanation rendered into error pages.
func Message(code Code) string {
	switch code {
	case BadRequest:
		return "The request could not be understood by the server."
	case NotFound:
		return "The requested page could not be found."
	case InternalServerError:
		return "An internal server error occurred."
	default:
		return ""
	}
}
