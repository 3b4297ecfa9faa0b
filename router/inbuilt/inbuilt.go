package inbuilt

import (
	"log"

	"github.com/indigo-web/webpool/http"
	"github.com/indigo-web/webpool/http/status"
)

// Handler produces the response for a request. A returned error is rendered as an error
// page, using the code of status.HTTPError or 500 for any other error.
type Handler func(request *http.Request) (*http.Response, error)

// Predicate decides whether a route matches the path.
type Predicate func(path string) bool

// Resolver serves files. It returns an error if the path can't be served, in which case
// the request falls through to the route table.
type Resolver interface {
	Serve(path string) (*http.Response, error)
}

type Logger interface {
	Printf(format string, v ...any)
}

type route struct {
	path    string
	match   Predicate
	handler Handler
}

// Router is a built-in implementation of router.Router interface. Requests are tried
// against the static resolver first, then against the routes in the order they were
// registered. Everything else is answered with the not-found handler.
type Router struct {
	static   Resolver
	routes   []route
	notFound Handler
	frozen   bool
	logger   Logger
}

// New constructs a new instance of inbuilt router
func New() *Router {
	return &Router{
		logger: log.Default(),
	}
}

// Logger replaces the logger panics and handler errors are reported to.
func (r *Router) Logger(logger Logger) *Router {
	r.logger = logger
	return r
}

// OnRequest routes the request. It never returns nil: failing handlers are turned into
// error pages.
func (r *Router) OnRequest(request *http.Request) *http.Response {
	if r.static != nil {
		if response, served := r.serveStatic(request); served {
			return response
		}
	}

	for _, rt := range r.routes {
		if rt.match(request.Path) {
			return r.call(rt.handler, request)
		}
	}

	if r.notFound != nil {
		return r.call(r.notFound, request)
	}

	return r.OnError(request, status.ErrNotFound)
}

// serveStatic consults the resolver. A panicking resolver is answered with an error page
// instead of falling through.
func (r *Router) serveStatic(request *http.Request) (response *http.Response, served bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Printf("inbuilt: static resolver panicked on %s: %v", request.Path, rec)
			response, served = r.OnError(request, status.ErrInternalServerError), true
		}
	}()

	response, err := r.static.Serve(request.Path)

	return response, err == nil && response != nil
}

func (r *Router) call(handler Handler, request *http.Request) (response *http.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Printf("inbuilt: handler for %s panicked: %v", request.Path, rec)
			response = r.OnError(request, status.ErrInternalServerError)
		}
	}()

	response, err := handler(request)
	switch {
	case err != nil:
		if status.CodeOf(err) == status.InternalServerError {
			r.logger.Printf("inbuilt: handler for %s failed: %s", request.Path, err)
		}

		return r.OnError(request, err)
	case response == nil:
		r.logger.Printf("inbuilt: handler for %s returned no response", request.Path)
		return r.OnError(request, status.ErrInternalServerError)
	}

	return response
}
