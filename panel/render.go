package panel

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	router "github.com/fasthttp/routingpanel"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("panel").ParseFS(templateFS, "templates/*.html"))

var (
	closingBody = []byte("</body>")
	htmlType    = []byte("text/html")
)

type pageData struct {
	*View
	CSS template.CSS
}

func (p *Panel) render(w io.Writer, name string, v *View) error {
	if err := templates.ExecuteTemplate(w, name, pageData{View: v, CSS: p.css}); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	return nil
}

// Tab renders the panel header.
func (p *Panel) Tab(w io.Writer, v *View) error {
	return p.render(w, "tab", v)
}

// Body renders the route table.
func (p *Panel) Body(w io.Writer, v *View) error {
	return p.render(w, "body", v)
}

// Handler serves the panel as a standalone page.
func (p *Panel) Handler(ctx *fasthttp.RequestCtx) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := p.render(buf, "page", p.View(ctx)); err != nil {
		p.cfg.Logger.Printf("%v", err)
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(buf.B)
}

// Inject returns a middleware appending the panel to HTML responses,
// right before their closing body tag. Streamed and encoded bodies are
// left untouched.
func (p *Panel) Inject() router.Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			next(ctx)

			resp := &ctx.Response
			if resp.IsBodyStream() || len(resp.Header.ContentEncoding()) > 0 {
				return
			}

			if !bytes.HasPrefix(resp.Header.ContentType(), htmlType) {
				return
			}

			body := resp.Body()

			i := bytes.LastIndex(body, closingBody)
			if i < 0 {
				return
			}

			buf := bytebufferpool.Get()
			defer bytebufferpool.Put(buf)

			if err := p.render(buf, "bar", p.View(ctx)); err != nil {
				p.cfg.Logger.Printf("%v", err)
				return
			}

			out := make([]byte, 0, len(body)+buf.Len())
			out = append(out, body[:i]...)
			out = append(out, buf.B...)
			out = append(out, body[i:]...)

			resp.SetBodyRaw(out)
		}
	}
}
