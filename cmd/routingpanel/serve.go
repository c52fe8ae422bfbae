package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"os/signal"
	"syscall"

	router "github.com/fasthttp/routingpanel"
	"github.com/fasthttp/routingpanel/internal/routesfile"
	"github.com/fasthttp/routingpanel/panel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

func serveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routes and the routing panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "Listen address")
	flags.String("editor", panel.DefaultEditorURI, "Editor link template, %file and %line are replaced")
	flags.String("panel-path", "/_debug/routing", "Path of the standalone panel page")
	flags.Bool("inject", true, "Append the panel to HTML responses")
	flags.StringSlice("palette", nil, "Highlight colors, any CSS color")

	for _, name := range []string{"addr", "editor", "panel-path", "inject", "palette"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	return cmd
}

// setup builds the router serving the routes files, the panel and the
// metrics endpoint.
func setup(v *viper.Viper, logger *log.Logger) (fasthttp.RequestHandler, error) {
	r, err := loadRouter(v)
	if err != nil {
		return nil, err
	}

	palette := v.GetStringSlice("palette")
	if _, err := panel.PaletteCSS("", palette); err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	p := panel.New(r, panel.Config{
		EditorURI: v.GetString("editor"),
		Palette:   palette,
		Logger:    logger,
		Metrics:   panel.NewMetrics(panel.WithRegistry(reg)),
	})

	r.GET(v.GetString("panel-path"), p.Handler).Named("routing-panel")
	r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))).Named("metrics")

	handler := r.Handler
	if v.GetBool("inject") {
		handler = p.Inject()(handler)
	}

	return handler, nil
}

func loadRouter(v *viper.Viper) (*router.Router, error) {
	f, err := routesfile.Load(v.GetString("routes"))
	if err != nil {
		return nil, err
	}

	r := router.New()
	r.DefaultLang = v.GetString("default-lang")

	if err := f.Register(r, pageHandler); err != nil {
		return nil, fmt.Errorf("registering routes: %w", err)
	}

	return r, nil
}

func runServe(cmd *cobra.Command, v *viper.Viper) error {
	logger := log.New(os.Stderr, "routingpanel: ", log.LstdFlags)

	handler, err := setup(v, logger)
	if err != nil {
		return err
	}

	s := &fasthttp.Server{
		Handler: handler,
		Name:    "routingpanel",
		Logger:  logger,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := v.GetString("addr")
	errc := make(chan error, 1)

	go func() {
		errc <- s.ListenAndServe(addr)
	}()

	logger.Printf("listening on %s, panel at %s", addr, v.GetString("panel-path"))

	select {
	case err := <-errc:
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
		logger.Printf("shutting down")
		return s.Shutdown()
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Name}}</title></head>
<body>
<h1>{{.Name}}</h1>
{{if .Controller}}<p>{{.Controller}}:{{.Action}}</p>{{end}}
</body>
</html>`))

// pageHandler serves a placeholder HTML page for a route from the routes
// files, so the injected panel has a page to land on.
func pageHandler(def routesfile.Route) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		name := def.Name
		if rt := router.CurrentRoute(ctx); rt != nil {
			name = rt.Name()
		}

		ctx.SetContentType("text/html; charset=utf-8")

		err := pageTemplate.Execute(ctx, map[string]string{
			"Name":       name,
			"Controller": def.Controller,
			"Action":     def.Action,
		})
		if err != nil {
			ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		}
	}
}
