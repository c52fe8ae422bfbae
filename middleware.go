package router

import "github.com/valyala/fasthttp"

// Middleware wraps a request handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Chain wraps handler with middleware so that the first one given is the
// outermost.
func Chain(handler fasthttp.RequestHandler, middleware ...Middleware) fasthttp.RequestHandler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	return handler
}
