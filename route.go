package router

import (
	"github.com/valyala/fasthttp"
)

// Route is a registered request handler with the metadata describing it.
// Routes are created by the Router registration methods and configured
// through their chainable setters before the server starts.
type Route struct {
	router *Router
	prefix string

	name       string
	method     string
	controller string
	action     string

	paths    Localized[compiledPath]
	defaults Localized[map[string]any]

	// handler is what the router serves, origin is what was registered
	handler fasthttp.RequestHandler
	origin  fasthttp.RequestHandler
}

// Named sets the route name. Names must be unique within a router.
func (rt *Route) Named(name string) *Route {
	if name == "" {
		panic("route name must not be empty")
	}

	if other, ok := rt.router.names[name]; ok && other != rt {
		panic("a route named '" + name + "' is already registered")
	}

	delete(rt.router.names, rt.name)
	rt.name = name
	rt.router.names[name] = rt

	return rt
}

// To records the controller and action the route dispatches to.
func (rt *Route) To(controller, action string) *Route {
	rt.controller = controller
	rt.action = action

	return rt
}

// Default sets a default value for a param.
func (rt *Route) Default(key string, value any) *Route {
	return rt.LocalizeDefault("", key, value)
}

// LocalizeDefault sets a default value for a param in the given language.
func (rt *Route) LocalizeDefault(lang, key string, value any) *Route {
	m, ok := rt.defaults.Get(lang)
	if !ok {
		m = make(map[string]any)
		rt.defaults.Set(lang, m)
	}

	m[key] = value

	return rt
}

// Localize adds a path template for the given language. Requests matched
// through it report lang as their language.
func (rt *Route) Localize(lang, path string) *Route {
	validatePath(path)

	if lang == "" {
		panic("language must not be empty in path '" + path + "'")
	}

	if _, ok := rt.paths.Get(lang); ok {
		panic("path for language '" + lang + "' is already registered in route '" + rt.Name() + "'")
	}

	if rt.prefix != "" && path == "/" {
		path = ""
	}

	path = rt.prefix + path

	rt.paths.Set(lang, compilePath(path))
	rt.router.registeredPaths[rt.method] = append(rt.router.registeredPaths[rt.method], path)

	return rt
}

// Name returns the route name. Unnamed routes are named after their
// controller and action, or their first path template.
func (rt *Route) Name() string {
	switch {
	case rt.name != "":
		return rt.name
	case rt.controller != "":
		return rt.ControllerAction()
	}

	cp, _ := rt.paths.First()

	return cp.template
}

// Method returns the HTTP method, MethodWild for any.
func (rt *Route) Method() string {
	return rt.method
}

// Templates returns the path templates by language.
func (rt *Route) Templates() Localized[string] {
	var l Localized[string]
	for _, lang := range rt.paths.Langs() {
		cp, _ := rt.paths.Get(lang)
		l.Set(lang, cp.template)
	}

	return l
}

// Patterns returns the match patterns by language.
func (rt *Route) Patterns() Localized[string] {
	var l Localized[string]
	for _, lang := range rt.paths.Langs() {
		cp, _ := rt.paths.Get(lang)
		l.Set(lang, cp.pattern)
	}

	return l
}

// Defaults returns the param defaults by language.
func (rt *Route) Defaults() Localized[map[string]any] {
	return rt.defaults
}

// ReverseParams returns the param names of the first path template, in
// order of appearance.
func (rt *Route) ReverseParams() []string {
	cp, _ := rt.paths.First()

	return append([]string(nil), cp.params...)
}

// ControllerName returns the controller set with To.
func (rt *Route) ControllerName() string {
	return rt.controller
}

// ActionName returns the action set with To.
func (rt *Route) ActionName() string {
	return rt.action
}

// ControllerAction returns "Controller:Action", or an empty string when
// the route has no controller.
func (rt *Route) ControllerAction() string {
	if rt.controller == "" {
		return ""
	}

	return rt.controller + ":" + rt.action
}

// Handler returns the handler as registered, before any group
// middleware was applied.
func (rt *Route) Handler() fasthttp.RequestHandler {
	return rt.origin
}

// match tries every localized path in order.
func (rt *Route) match(path string) (lang string, values map[string]string, tsr, ok bool) {
	for _, lang := range rt.paths.Langs() {
		cp, _ := rt.paths.Get(lang)

		if values, tsr, ok := cp.match(path); ok {
			return lang, values, tsr, true
		}
	}

	return "", nil, false, false
}
