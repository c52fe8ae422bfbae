package router

import (
	"github.com/valyala/fasthttp"
)

// Group registers routes under a common path prefix, wrapping their
// handlers with the group middleware.
type Group struct {
	router     *Router
	prefix     string
	middleware []Middleware
}

// Group returns a new group.
// The middleware of the current group is inherited.
func (g *Group) Group(path string) *Group {
	validateGroupPath(path)

	if path == "/" {
		return g
	}

	return &Group{
		router:     g.router,
		prefix:     g.prefix + path,
		middleware: append([]Middleware(nil), g.middleware...),
	}
}

// GET is a shortcut for group.Handle(fasthttp.MethodGet, path, handler)
func (g *Group) GET(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodGet, path, handler)
}

// HEAD is a shortcut for group.Handle(fasthttp.MethodHead, path, handler)
func (g *Group) HEAD(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodHead, path, handler)
}

// POST is a shortcut for group.Handle(fasthttp.MethodPost, path, handler)
func (g *Group) POST(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodPost, path, handler)
}

// PUT is a shortcut for group.Handle(fasthttp.MethodPut, path, handler)
func (g *Group) PUT(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodPut, path, handler)
}

// PATCH is a shortcut for group.Handle(fasthttp.MethodPatch, path, handler)
func (g *Group) PATCH(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodPatch, path, handler)
}

// DELETE is a shortcut for group.Handle(fasthttp.MethodDelete, path, handler)
func (g *Group) DELETE(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodDelete, path, handler)
}

// OPTIONS is a shortcut for group.Handle(fasthttp.MethodOptions, path, handler)
func (g *Group) OPTIONS(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodOptions, path, handler)
}

// ANY is a shortcut for group.Handle(router.MethodWild, path, handler)
//
// WARNING: Use only for routes where the request method is not important
func (g *Group) ANY(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(MethodWild, path, handler)
}

// ServeFiles serves files from the given file system root.
// The path must end with "/{filepath:*}", files are then served from the local
// path /defined/root/dir/{filepath:*}.
// For example if root is "/etc" and {filepath:*} is "passwd", the local file
// "/etc/passwd" would be served.
// Internally a fasthttp.FSHandler is used, therefore http.NotFound is used instead
// Use:
//
//	router.ServeFiles("/src/{filepath:*}", "./")
func (g *Group) ServeFiles(path string, rootPath string) *Route {
	validatePath(path)

	rt := g.router.serveFiles(g.prefix, path, rootPath)
	rt.handler = g.applyMiddleware(rt.handler)

	return rt
}

// Handle registers a new request handler with the given path and method.
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used.
//
// This function is intended for bulk loading and to allow the usage of less
// frequently used, non-standardized or custom methods (e.g. for internal
// communication with a proxy).
func (g *Group) Handle(method, path string, handler fasthttp.RequestHandler) *Route {
	validatePath(path)

	rt := g.router.add(method, g.prefix, path, handler)
	rt.handler = g.applyMiddleware(handler)

	return rt
}

// AddMiddleware wraps the handlers registered after the call.
func (g *Group) AddMiddleware(m Middleware) {
	g.middleware = append(g.middleware, m)
}

func (g *Group) applyMiddleware(handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	return Chain(handler, g.middleware...)
}
