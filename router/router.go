package router

import "github.com/indigo-web/webpool/http"

// Router decides what every request is answered with. Implementations must always return
// a response: the connection is closed right after it is written.
type Router interface {
	// OnRequest routes a parsed request.
	OnRequest(request *http.Request) *http.Response
	// OnError renders a response for the error. The request may be nil if it couldn't
	// be parsed at all.
	OnError(request *http.Request, err error) *http.Response
}
