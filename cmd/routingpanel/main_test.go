package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const testRoutes = `
default_lang: en
routes:
  - name: home
    path: /
  - name: user
    path: /users/{id:[0-9]+}
    localized:
      de: /benutzer/{id:[0-9]+}
    controller: Users
    action: Detail
`

func writeRoutes(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testRoutes), 0o644))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(viper.New())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestRoutesCommand(t *testing.T) {
	out, err := execute(t, "routes", "--routes", writeRoutes(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "METHOD"))
	assert.Contains(t, lines[1], "home")
	assert.Contains(t, lines[2], "/users/{id:[0-9]+}")
	assert.Contains(t, lines[2], `^/users/([0-9]+)(?=/$|$)`)
	assert.Contains(t, lines[3], "de")
	assert.Contains(t, lines[3], "/benutzer/{id:[0-9]+}")
}

func TestRoutesCommandFromEnv(t *testing.T) {
	t.Setenv("ROUTINGPANEL_ROUTES", writeRoutes(t))

	out, err := execute(t, "routes")
	require.NoError(t, err)
	assert.Contains(t, out, "user")
}

func TestRoutesCommandMissingFile(t *testing.T) {
	_, err := execute(t, "routes", "--routes", filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorContains(t, err, "no routes file")
}

func TestSetup(t *testing.T) {
	v := viper.New()
	v.Set("routes", writeRoutes(t))
	v.Set("panel-path", "/_debug/routing")
	v.Set("inject", true)

	handler, err := setup(v, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	request := func(uri string) *fasthttp.RequestCtx {
		ctx := new(fasthttp.RequestCtx)
		ctx.Request.SetRequestURI(uri)
		handler(ctx)

		return ctx
	}

	ctx := request("/users/42")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	body := string(ctx.Response.Body())
	assert.Contains(t, body, "<h1>user</h1>")
	assert.Contains(t, body, `class="routing-bar"`)

	ctx = request("/_debug/routing")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "<title>Routing: routing-panel</title>")

	ctx = request("/metrics")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "routingpanel_views_total")
}

func TestSetupInvalidPalette(t *testing.T) {
	v := viper.New()
	v.Set("routes", writeRoutes(t))
	v.Set("palette", []string{"not-a-color"})

	_, err := setup(v, log.New(io.Discard, "", 0))
	assert.Error(t, err)
}
