package panel

import (
	"html/template"
	"net/url"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// SourceLocation is a line in a source file.
type SourceLocation struct {
	File string
	Line int
}

// SourceResolver locates the method of a controller in the source code.
// Unknown names are not an error, they just produce no link.
type SourceResolver interface {
	ResolveSource(qualifiedName, method string) (SourceLocation, bool)
}

// SourceResolverFunc adapts a function to SourceResolver.
type SourceResolverFunc func(qualifiedName, method string) (SourceLocation, bool)

// ResolveSource calls f.
func (f SourceResolverFunc) ResolveSource(qualifiedName, method string) (SourceLocation, bool) {
	return f(qualifiedName, method)
}

// FuncResolver resolves controller actions registered as Go funcs.
// It is safe for concurrent use.
type FuncResolver struct {
	mu    sync.RWMutex
	funcs map[string]interface{}
}

// NewFuncResolver returns an empty FuncResolver.
func NewFuncResolver() *FuncResolver {
	return &FuncResolver{funcs: make(map[string]interface{})}
}

// Register maps qualifiedName:method to fn, which must be a func.
func (r *FuncResolver) Register(qualifiedName, method string, fn interface{}) *FuncResolver {
	if v := reflect.ValueOf(fn); v.Kind() != reflect.Func || v.IsNil() {
		panic("the action '" + qualifiedName + ":" + method + "' must be a non-nil func")
	}

	r.mu.Lock()
	r.funcs[qualifiedName+":"+method] = fn
	r.mu.Unlock()

	return r
}

// ResolveSource returns where the registered func is declared.
func (r *FuncResolver) ResolveSource(qualifiedName, method string) (SourceLocation, bool) {
	r.mu.RLock()
	fn, ok := r.funcs[qualifiedName+":"+method]
	r.mu.RUnlock()

	if !ok {
		return SourceLocation{}, false
	}

	loc, _, ok := FuncLocation(fn)

	return loc, ok
}

// FuncLocation returns the declaration and the qualified name of fn.
func FuncLocation(fn interface{}) (SourceLocation, string, bool) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return SourceLocation{}, "", false
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return SourceLocation{}, "", false
	}

	file, line := f.FileLine(f.Entry())

	return SourceLocation{File: file, Line: line}, f.Name(), true
}

// Link is an "open in editor" link. URI is empty when the source could
// not be located.
type Link struct {
	URI   template.URL
	Label string
}

func (p *Panel) editorURI(loc SourceLocation) template.URL {
	return template.URL(strings.NewReplacer(
		"%file", url.QueryEscape(loc.File),
		"%line", strconv.Itoa(loc.Line),
	).Replace(p.cfg.EditorURI))
}

// qualify prefixes controller with the configured namespace unless it
// starts with a backslash, which marks it as fully qualified.
func (p *Panel) qualify(controller string) string {
	if strings.HasPrefix(controller, `\`) {
		return controller[1:]
	}

	return p.cfg.ControllerNamespace + "." + controller
}

// actionLink links controller:action, falling back to the handler when
// the resolver does not know the action.
func (p *Panel) actionLink(controller, action string, handler interface{}) Link {
	qualified := p.qualify(controller)
	link := Link{Label: qualified + ":" + action}

	if p.cfg.Resolver != nil {
		if loc, ok := p.cfg.Resolver.ResolveSource(qualified, action); ok {
			link.URI = p.editorURI(loc)
			return link
		}
	}

	if loc, _, ok := FuncLocation(handler); ok {
		link.URI = p.editorURI(loc)
	}

	return link
}

func (p *Panel) handlerLink(handler interface{}) Link {
	loc, name, ok := FuncLocation(handler)
	if !ok {
		return Link{}
	}

	return Link{URI: p.editorURI(loc), Label: name}
}
