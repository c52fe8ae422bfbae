package router

import (
	"fmt"
	"strings"

	gotilsbytes "github.com/savsgio/gotils/bytes"
	gotilsstrconv "github.com/savsgio/gotils/strconv"
	gotilsstrings "github.com/savsgio/gotils/strings"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

// MethodWild wild HTTP method
const MethodWild = "*"

var (
	questionMark = byte('?')

	// MatchedRouteParam is the user value under which the matched *Route is
	// stored for every routed request.
	MatchedRouteParam = fmt.Sprintf("__matchedRoute::%s__", gotilsbytes.Rand(make([]byte, 15)))

	// LangParam is the user value under which the language of the matched
	// path template is stored. It is empty for unlocalized templates.
	LangParam = fmt.Sprintf("__matchedLang::%s__", gotilsbytes.Rand(make([]byte, 15)))
)

// Router dispatches requests to routes registered with path templates.
// Routes are matched in registration order.
type Router struct {
	routes          []*Route
	names           map[string]*Route
	registeredPaths map[string][]string
	globalAllowed   string

	// DefaultLang is reported by RequestLang for requests matched through
	// an unlocalized path. An empty value means the router is not
	// multilingual.
	DefaultLang string

	// Enables automatic redirection if the current route can't be matched
	// but a handler for the path with (without) the trailing slash exists.
	RedirectTrailingSlash bool

	// If enabled, the router checks if another method is allowed for the
	// current route, if the current request can not be routed.
	// If this is the case, the request is answered with 'Method Not Allowed'
	// and HTTP status code 405.
	HandleMethodNotAllowed bool

	// If enabled, the router automatically replies to OPTIONS requests.
	// Custom OPTIONS handlers take priority over automatic replies.
	HandleOPTIONS bool

	// An optional fasthttp.RequestHandler that is called on automatic OPTIONS requests.
	GlobalOPTIONS fasthttp.RequestHandler

	// Configurable fasthttp.RequestHandler which is called when no matching route is
	// found. If it is not set, default NotFound is used.
	NotFound fasthttp.RequestHandler

	// Configurable fasthttp.RequestHandler which is called when a request
	// cannot be routed and HandleMethodNotAllowed is true.
	// The "Allow" header with allowed request methods is set before the handler
	// is called.
	MethodNotAllowed fasthttp.RequestHandler

	// Function to handle panics recovered from http handlers.
	// It should be used to generate a error page and return the http error code
	// 500 (Internal Server Error).
	PanicHandler func(*fasthttp.RequestCtx, interface{})
}

// New returns a new initialized Router.
// Trailing slash redirection is enabled by default.
func New() *Router {
	return &Router{
		names:                  make(map[string]*Route),
		registeredPaths:        make(map[string][]string),
		RedirectTrailingSlash:  true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
	}
}

// Group returns a new group of routes sharing the path prefix.
func (r *Router) Group(path string) *Group {
	validateGroupPath(path)

	if path == "/" {
		path = ""
	}

	return &Group{router: r, prefix: path}
}

// GET is a shortcut for router.Handle(fasthttp.MethodGet, path, handler)
func (r *Router) GET(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodGet, path, handler)
}

// HEAD is a shortcut for router.Handle(fasthttp.MethodHead, path, handler)
func (r *Router) HEAD(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodHead, path, handler)
}

// OPTIONS is a shortcut for router.Handle(fasthttp.MethodOptions, path, handler)
func (r *Router) OPTIONS(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodOptions, path, handler)
}

// POST is a shortcut for router.Handle(fasthttp.MethodPost, path, handler)
func (r *Router) POST(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodPost, path, handler)
}

// PUT is a shortcut for router.Handle(fasthttp.MethodPut, path, handler)
func (r *Router) PUT(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodPut, path, handler)
}

// PATCH is a shortcut for router.Handle(fasthttp.MethodPatch, path, handler)
func (r *Router) PATCH(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodPatch, path, handler)
}

// DELETE is a shortcut for router.Handle(fasthttp.MethodDelete, path, handler)
func (r *Router) DELETE(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodDelete, path, handler)
}

// ANY is a shortcut for router.Handle(router.MethodWild, path, handler)
//
// WARNING: Use only for routes where the request method is not important
func (r *Router) ANY(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(MethodWild, path, handler)
}

// Handle registers a new request handler with the given path and method
// and returns the route for further configuration.
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used.
//
// This function is intended for bulk loading and to allow the usage of less
// frequently used, non-standardized or custom methods (e.g. for internal
// communication with a proxy).
func (r *Router) Handle(method, path string, handler fasthttp.RequestHandler) *Route {
	return r.add(method, "", path, handler)
}

func (r *Router) add(method, prefix, path string, handler fasthttp.RequestHandler) *Route {
	switch {
	case len(method) == 0:
		panic("method must not be empty")
	case len(path) < 1 || path[0] != '/':
		panic("path must begin with '/' in path '" + path + "'")
	case handler == nil:
		panic("handler must not be nil")
	}

	if prefix != "" && path == "/" {
		path = ""
	}

	fullPath := prefix + path

	rt := &Route{
		router:  r,
		prefix:  prefix,
		method:  method,
		handler: handler,
		origin:  handler,
	}
	rt.paths.Set("", compilePath(fullPath))

	newMethod := r.registeredPaths[method] == nil
	r.registeredPaths[method] = append(r.registeredPaths[method], fullPath)
	r.routes = append(r.routes, rt)

	if newMethod {
		r.globalAllowed = r.allowed("*", "")
	}

	return rt
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
func (r *Router) ServeFiles(path string, rootPath string) *Route {
	return r.serveFiles("", path, rootPath)
}

func (r *Router) serveFiles(prefix, path, rootPath string) *Route {
	suffix := "/{filepath:*}"

	if !strings.HasSuffix(path, suffix) {
		panic("path must end with " + suffix + " in path '" + path + "'")
	}

	stripSlashes := strings.Count(prefix+path[:len(path)-len(suffix)], "/")
	fileHandler := fasthttp.FSHandler(rootPath, stripSlashes)

	return r.add(fasthttp.MethodGet, prefix, path, fileHandler)
}

func (r *Router) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		r.PanicHandler(ctx, rcv)
	}
}

// Lookup allows the manual lookup of a method + path combo.
// This is e.g. useful to build a framework around this router.
// If the path was found, it returns the handler function and stores the
// matched route, language and params as user values of ctx, which may be
// nil. The second return value indicates whether a redirection to the same
// path without the trailing slash should be performed.
func (r *Router) Lookup(method, path string, ctx *fasthttp.RequestCtx) (fasthttp.RequestHandler, bool) {
	rt, tsr := r.lookup(method, path, ctx)
	if rt == nil {
		return nil, false
	}

	return rt.handler, tsr
}

func (r *Router) lookup(method, path string, ctx *fasthttp.RequestCtx) (*Route, bool) {
	for _, rt := range r.routes {
		if rt.method != method && rt.method != MethodWild {
			continue
		}

		lang, values, tsr, ok := rt.match(path)
		if !ok {
			continue
		}

		if ctx != nil {
			for name, value := range values {
				ctx.SetUserValue(name, value)
			}

			ctx.SetUserValue(MatchedRouteParam, rt)
			ctx.SetUserValue(LangParam, lang)
		}

		return rt, tsr
	}

	return nil, false
}

func (r *Router) allowed(path, reqMethod string) (allow string) {
	allowed := make([]string, 0, 9)

	if path == "*" || path == "/*" { // server-wide
		// empty method is used for internal calls to refresh the cache
		if reqMethod == "" {
			for method := range r.registeredPaths {
				if method == fasthttp.MethodOptions {
					continue
				}
				// Add request method to list of allowed methods
				allowed = append(allowed, method)
			}
		} else {
			return r.globalAllowed
		}
	} else { // specific path
		for _, rt := range r.routes {
			// Skip the requested method - we already tried this one
			if rt.method == reqMethod || rt.method == fasthttp.MethodOptions {
				continue
			}

			if gotilsstrings.Include(allowed, rt.method) {
				continue
			}

			if _, _, _, ok := rt.match(path); ok {
				allowed = append(allowed, rt.method)
			}
		}
	}

	if len(allowed) > 0 {
		// Add request method to list of allowed methods
		allowed = append(allowed, fasthttp.MethodOptions)

		// Sort allowed methods.
		// sort.Strings(allowed) unfortunately causes unnecessary allocations
		// due to allowed being moved to the heap and interface conversion
		for i, l := 1, len(allowed); i < l; i++ {
			for j := i; j > 0 && allowed[j] < allowed[j-1]; j-- {
				allowed[j], allowed[j-1] = allowed[j-1], allowed[j]
			}
		}

		// return as comma separated list
		return strings.Join(allowed, ", ")
	}
	return
}

// Handler makes the router implement the fasthttp.RequestHandler interface.
func (r *Router) Handler(ctx *fasthttp.RequestCtx) {
	if r.PanicHandler != nil {
		defer r.recv(ctx)
	}

	path := gotilsstrconv.B2S(ctx.Path())
	method := gotilsstrconv.B2S(ctx.Method())

	rt, tsr := r.lookup(method, path, ctx)

	if r.RedirectTrailingSlash && method != fasthttp.MethodConnect && path != "/" {
		if rt != nil && tsr {
			r.redirect(ctx, method, path[:len(path)-1])
			return
		}

		if rt == nil && path[len(path)-1] != '/' {
			if handler, _ := r.Lookup(method, path+"/", nil); handler != nil {
				r.redirect(ctx, method, path+"/")
				return
			}
		}
	}

	if rt != nil {
		rt.handler(ctx)
		return
	}

	if r.HandleOPTIONS && method == fasthttp.MethodOptions {
		// Handle OPTIONS requests
		if allow := r.allowed(path, fasthttp.MethodOptions); allow != "" {
			ctx.Response.Header.Set("Allow", allow)
			if r.GlobalOPTIONS != nil {
				r.GlobalOPTIONS(ctx)
			}
			return
		}
	} else if r.HandleMethodNotAllowed { // Handle 405
		if allow := r.allowed(path, method); allow != "" {
			ctx.Response.Header.Set("Allow", allow)
			if r.MethodNotAllowed != nil {
				r.MethodNotAllowed(ctx)
			} else {
				ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
				ctx.SetBodyString(fasthttp.StatusMessage(fasthttp.StatusMethodNotAllowed))
			}
			return
		}
	}

	// Handle 404
	if r.NotFound != nil {
		r.NotFound(ctx)
	} else {
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
	}
}

func (r *Router) redirect(ctx *fasthttp.RequestCtx, method, path string) {
	// Moved Permanently, request with GET method
	code := fasthttp.StatusMovedPermanently
	if method != fasthttp.MethodGet {
		// Permanent Redirect, request with same method
		code = fasthttp.StatusPermanentRedirect
	}

	uri := bytebufferpool.Get()
	uri.SetString(path)

	queryBuf := ctx.URI().QueryString()
	if len(queryBuf) > 0 {
		uri.WriteByte(questionMark)
		uri.Write(queryBuf)
	}

	ctx.RedirectBytes(uri.Bytes(), code)

	bytebufferpool.Put(uri)
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []*Route {
	return append([]*Route(nil), r.routes...)
}

// Route returns the route registered under name, or nil.
func (r *Router) Route(name string) *Route {
	return r.names[name]
}

// List returns all registered path templates grouped by method
func (r *Router) List() map[string][]string {
	return r.registeredPaths
}

// CurrentRoute returns the route matched for ctx, or nil.
func CurrentRoute(ctx *fasthttp.RequestCtx) *Route {
	rt, _ := ctx.UserValue(MatchedRouteParam).(*Route)
	return rt
}

// RequestLang returns the language of the path template matched for ctx,
// falling back to the router default language.
func (r *Router) RequestLang(ctx *fasthttp.RequestCtx) string {
	if lang, _ := ctx.UserValue(LangParam).(string); lang != "" {
		return lang
	}

	return r.DefaultLang
}
