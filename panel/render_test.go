package panel

import (
	"bytes"
	"strings"
	"testing"

	router "github.com/fasthttp/routingpanel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestTabAndBody(t *testing.T) {
	r := newTestRouter()
	p := New(r, Config{Logger: &recordingLogger{}})
	v := p.View(serve(r, "/users/42"))

	var tab bytes.Buffer
	require.NoError(t, p.Tab(&tab, v))
	assert.Contains(t, tab.String(), "user (Users:Detail)")

	var body bytes.Buffer
	require.NoError(t, p.Body(&body, v))

	html := body.String()
	assert.Contains(t, html, `<tr class="matched">`)
	assert.Contains(t, html, `<span class="c0">([0-9]+)</span>`)
	assert.Contains(t, html, `<span class="c0">{id:[0-9]+}</span>`)
	assert.Contains(t, html, `<a href="editor://open/?file=`)
	assert.Contains(t, html, `<span class="dump-string">"42"</span>`)
	assert.Contains(t, html, `<strong>/users/42</strong>`)
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestBodyEscapesDebugEntries(t *testing.T) {
	p := New(router.New(), Config{Logger: &recordingLogger{}})

	var body bytes.Buffer
	require.NoError(t, p.Body(&body, &View{Title: "x", Debug: []string{"<script>"}}))

	assert.Contains(t, body.String(), "&lt;script&gt;")
	assert.NotContains(t, body.String(), "<script>")
}

func TestHandler(t *testing.T) {
	r := newTestRouter()
	p := New(r, Config{ID: "rp", Palette: []string{"red"}, Logger: &recordingLogger{}})
	r.GET("/_debug/routing", p.Handler).Named("debug-routing")

	ctx := serve(r, "/_debug/routing")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "text/html; charset=utf-8", string(ctx.Response.Header.ContentType()))

	html := string(ctx.Response.Body())
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Routing: debug-routing</title>")
	assert.Contains(t, html, `<div id="rp">`)
	assert.Contains(t, html, "#rp .c0{color:#ff0000}")
}

func TestInject(t *testing.T) {
	r := newTestRouter()
	r.GET("/page", func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetBodyString("<html><body><p>hello</p></body></html>")
	})
	r.GET("/data", func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"body":"</body>"}`)
	})
	r.GET("/fragment", func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("text/html")
		ctx.SetBodyString("<p>no body tag</p>")
	})

	p := New(r, Config{Logger: &recordingLogger{}})
	handler := p.Inject()(r.Handler)

	run := func(uri string) string {
		ctx := new(fasthttp.RequestCtx)
		ctx.Request.SetRequestURI(uri)
		handler(ctx)

		return string(ctx.Response.Body())
	}

	page := run("/page")
	assert.True(t, strings.HasPrefix(page, "<html><body><p>hello</p>"))
	assert.True(t, strings.HasSuffix(page, "</body></html>"))
	assert.Contains(t, page, `<details id="routing-panel" class="routing-bar">`)
	assert.Contains(t, page, "/page")
	assert.Less(t, strings.Index(page, "<details"), strings.LastIndex(page, "</body>"))

	assert.Equal(t, `{"body":"</body>"}`, run("/data"))
	assert.Equal(t, "<p>no body tag</p>", run("/fragment"))
}
