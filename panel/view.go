// Package panel renders the routes of a router as a debug-bar panel.
//
// The panel lists every registered route with its colorized match pattern
// and path template, marks the route matched by the current request and
// shows the params it was resolved with.
package panel

import (
	"html/template"
	"runtime/debug"
	"time"

	router "github.com/fasthttp/routingpanel"
	"github.com/valyala/fasthttp"
)

const noMatchTitle = "No route match"

// Panel builds and renders routing panel views for a router.
type Panel struct {
	router *router.Router
	cfg    Config
	css    template.CSS
}

// New returns a panel listing the routes of r.
// It panics if the configured palette holds an invalid CSS color.
func New(r *router.Router, cfg Config) *Panel {
	cfg = cfg.withDefaults()

	css, err := PaletteCSS(cfg.ID, cfg.Palette)
	if err != nil {
		panic("invalid palette: " + err.Error())
	}

	return &Panel{router: r, cfg: cfg, css: css}
}

// Requested describes the request a view was built for.
type Requested struct {
	Method  string
	BaseURL string
	Path    string
}

// Row is one route of the table.
type Row struct {
	Matched bool
	Method  string
	Handler string

	// Match is the colorized match pattern, Reverse the colorized path
	// template. Groups at the same position share a color.
	Match   template.HTML
	Reverse template.HTML

	Name       string
	CtrlAction string
	Link       Link

	Defaults []Param

	// Only set on the matched row.
	Params            []Param
	MatchedCtrlAction string
	MatchedLink       Link
}

// View is the data rendered by the tab and the body of the panel. A view
// is built for a single request and never shared.
type View struct {
	ID        string
	Title     string
	Lang      string
	Rows      []Row
	Requested Requested

	// Debug holds the panics recovered while building the view.
	Debug []string
}

// Matched reports whether a route matched the request.
func (v *View) Matched() bool {
	for i := range v.Rows {
		if v.Rows[i].Matched {
			return true
		}
	}

	return false
}

// View builds the view for ctx. It must be called once the router
// handled ctx, so the matched route is known.
func (p *Panel) View(ctx *fasthttp.RequestCtx) *View {
	start := time.Now()

	v := &View{ID: p.cfg.ID, Title: noMatchTitle}

	defer p.cfg.Metrics.observe(v, start)
	defer p.recoverInto(v, "building view")

	v.Requested = Requested{
		Method:  string(ctx.Method()),
		BaseURL: string(ctx.URI().Scheme()) + "://" + string(ctx.Host()),
		Path:    string(ctx.Path()),
	}

	current := router.CurrentRoute(ctx)
	v.Lang = p.router.RequestLang(ctx)

	if current != nil {
		v.Title = title(current)
	}

	for _, rt := range p.router.Routes() {
		if row, ok := p.row(ctx, v, rt, rt == current); ok {
			v.Rows = append(v.Rows, row)
		}
	}

	return v
}

func title(rt *router.Route) string {
	name := rt.Name()

	if ca := rt.ControllerAction(); ca != "" && ca != name {
		return name + " (" + ca + ")"
	}

	return name
}

func (p *Panel) row(ctx *fasthttp.RequestCtx, v *View, rt *router.Route, matched bool) (row Row, ok bool) {
	defer p.recoverInto(v, "listing route")

	defLang := p.router.DefaultLang
	defaults := ResolveLocalized(rt.Defaults(), v.Lang, defLang)

	row = Row{
		Matched:    matched,
		Method:     rt.Method(),
		Match:      HighlightMatch(ResolveLocalized(rt.Patterns(), v.Lang, defLang)),
		Reverse:    HighlightReverse(ResolveLocalized(rt.Templates(), v.Lang, defLang)),
		Name:       rt.Name(),
		CtrlAction: rt.ControllerAction(),
	}

	handler := p.handlerLink(rt.Handler())
	row.Handler = handler.Label

	if rt.ControllerName() != "" {
		row.Link = p.actionLink(rt.ControllerName(), rt.ActionName(), rt.Handler())
	} else {
		row.Link = handler
	}

	keys := append(rt.ReverseParams(), sortedKeys(defaults)...)
	row.Defaults = p.params(ctx, v.Lang, keys, defaults, defaults)

	if !matched {
		return row, true
	}

	req := requestParams(ctx, defaults)
	row.Params = p.params(ctx, v.Lang, append(keys, req.keys...), req.values, defaults)

	if ctrl, _ := req.values["controller"].(string); ctrl != "" {
		action, _ := req.values["action"].(string)
		if action == "" {
			action = rt.ActionName()
		}

		ctrl, action = pascalCase(ctrl), pascalCase(action)
		row.MatchedCtrlAction = ctrl + ":" + action
		row.MatchedLink = p.actionLink(ctrl, action, rt.Handler())
	}

	return row, true
}

// requestParams merges the route defaults, the query string and the
// params the router matched, later ones taking precedence.
func requestParams(ctx *fasthttp.RequestCtx, defaults map[string]interface{}) *paramSet {
	req := newParamSet()

	for _, key := range sortedKeys(defaults) {
		req.set(key, defaults[key])
	}

	ctx.QueryArgs().VisitAll(func(key, value []byte) {
		req.set(string(key), string(value))
	})

	ctx.VisitUserValues(func(key []byte, value interface{}) {
		k := string(key)
		if k == router.MatchedRouteParam || k == router.LangParam {
			return
		}

		if s, ok := value.(string); ok {
			req.set(k, s)
		}
	})

	return req
}

// params renders the values of keys in order. The request language comes
// first on multilingual routers. controller and action are only listed
// when they are route defaults or query args.
func (p *Panel) params(ctx *fasthttp.RequestCtx, lang string, keys []string, values, defaults map[string]interface{}) []Param {
	var params []Param
	seen := make(map[string]bool, len(keys)+1)

	if p.router.DefaultLang != "" {
		params = append(params, Param{Name: "lang", Value: renderValue(lang)})
		seen["lang"] = true
	}

	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true

		if key == "controller" || key == "action" {
			if _, ok := defaults[key]; !ok && !ctx.QueryArgs().Has(key) {
				continue
			}
		}

		params = append(params, Param{Name: key, Value: renderValue(values[key])})
	}

	return params
}

// recoverInto must be deferred directly.
func (p *Panel) recoverInto(v *View, where string) {
	if rcv := recover(); rcv != nil {
		p.cfg.Logger.Printf("%s: %v", where, rcv)
		v.Debug = append(v.Debug, where+": "+dumper.Sdump(rcv)+string(debug.Stack()))
	}
}
