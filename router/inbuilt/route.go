package inbuilt

import "fmt"

// Route registers a handler for the exact path. Registering the same path twice panics.
func (r *Router) Route(path string, handler Handler) *Router {
	r.mustNotBeFrozen()

	for _, rt := range r.routes {
		if len(rt.path) > 0 && rt.path == path {
			panic(fmt.Errorf("route already registered: %s", path))
		}
	}

	r.routes = append(r.routes, route{
		path: path,
		match: func(requested string) bool {
			return requested == path
		},
		handler: handler,
	})

	return r
}

// RouteFunc registers a handler for every path the predicate matches.
func (r *Router) RouteFunc(predicate Predicate, handler Handler) *Router {
	r.mustNotBeFrozen()
	r.routes = append(r.routes, route{
		match:   predicate,
		handler: handler,
	})

	return r
}

// Static sets the resolver consulted before the routes.
func (r *Router) Static(resolver Resolver) *Router {
	r.mustNotBeFrozen()
	r.static = resolver
	return r
}

// NotFound overrides the default 404 page.
func (r *Router) NotFound(handler Handler) *Router {
	r.mustNotBeFrozen()
	r.notFound = handler
	return r
}

// Freeze forbids any further registrations. The router is read concurrently by every
// worker once the server is started, so it must not change afterwards.
func (r *Router) Freeze() {
	r.frozen = true
}

func (r *Router) mustNotBeFrozen() {
	if r.frozen {
		panic("inbuilt: router is frozen")
	}
}
