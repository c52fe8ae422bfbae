// Package routesfile loads route definitions from YAML or JSON files and
// registers them on a router.
package routesfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	router "github.com/fasthttp/routingpanel"
	"github.com/tidwall/jsonc"
	"github.com/valyala/fasthttp"
	"gopkg.in/yaml.v3"
)

// File is a set of route definitions.
type File struct {
	DefaultLang string  `yaml:"default_lang" json:"default_lang"`
	Routes      []Route `yaml:"routes" json:"routes"`
}

// Route defines a single route.
type Route struct {
	Name   string `yaml:"name" json:"name"`
	Method string `yaml:"method" json:"method"`
	Path   string `yaml:"path" json:"path"`

	// Localized maps a language to the path template used for it.
	Localized map[string]string `yaml:"localized" json:"localized"`

	Controller string `yaml:"controller" json:"controller"`
	Action     string `yaml:"action" json:"action"`

	Defaults          map[string]interface{}            `yaml:"defaults" json:"defaults"`
	LocalizedDefaults map[string]map[string]interface{} `yaml:"localized_defaults" json:"localized_defaults"`
}

// Parse decodes data according to the extension of name. YAML is used
// for .yaml and .yml, JSON with comments for .json and .jsonc.
func Parse(name string, data []byte) (*File, error) {
	f := &File{}

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported routes file extension %q", ext)
	}

	for i := range f.Routes {
		rt := &f.Routes[i]

		if rt.Path == "" {
			return nil, fmt.Errorf("%s: route %d has no path", name, i)
		}

		if rt.Method == "" {
			rt.Method = fasthttp.MethodGet
		}
		rt.Method = strings.ToUpper(rt.Method)
	}

	return f, nil
}

// Load reads every file matching pattern, in lexical order, and merges
// their routes. The first non-empty default language wins.
func Load(pattern string) (*File, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", pattern, err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no routes file matches %s", pattern)
	}

	sort.Strings(matches)

	merged := &File{}
	for _, name := range matches {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading routes: %w", err)
		}

		f, err := Parse(name, data)
		if err != nil {
			return nil, err
		}

		if merged.DefaultLang == "" {
			merged.DefaultLang = f.DefaultLang
		}

		merged.Routes = append(merged.Routes, f.Routes...)
	}

	return merged, nil
}

// Register adds the routes to r, serving each with the handler returned
// by handler. Invalid definitions are reported as errors.
func (f *File) Register(r *router.Router, handler func(Route) fasthttp.RequestHandler) error {
	if f.DefaultLang != "" && r.DefaultLang == "" {
		r.DefaultLang = f.DefaultLang
	}

	for i, def := range f.Routes {
		if err := register(r, def, handler(def)); err != nil {
			return fmt.Errorf("route %d (%s %s): %w", i, def.Method, def.Path, err)
		}
	}

	return nil
}

func register(r *router.Router, def Route, h fasthttp.RequestHandler) (err error) {
	// the router panics on invalid definitions
	defer func() {
		if rcv := recover(); rcv != nil {
			err = fmt.Errorf("%v", rcv)
		}
	}()

	rt := r.Handle(def.Method, def.Path, h)

	if def.Name != "" {
		rt.Named(def.Name)
	}

	if def.Controller != "" {
		rt.To(def.Controller, def.Action)
	}

	for _, key := range sortedKeys(def.Defaults) {
		rt.Default(key, def.Defaults[key])
	}

	for _, lang := range sortedKeys(def.Localized) {
		rt.Localize(lang, def.Localized[lang])
	}

	for _, lang := range sortedKeys(def.LocalizedDefaults) {
		defaults := def.LocalizedDefaults[lang]
		for _, key := range sortedKeys(defaults) {
			rt.LocalizeDefault(lang, key, defaults[key])
		}
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
