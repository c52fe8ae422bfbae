package panel

import (
	"log"
	"os"

	"github.com/valyala/fasthttp"
)

const (
	defaultID                  = "routing-panel"
	defaultControllerNamespace = "controllers"

	// DefaultEditorURI opens a file in the editor registered for the
	// editor:// scheme. %file and %line are replaced with the location.
	DefaultEditorURI = "editor://open/?file=%file&line=%line"
)

// Config configures a Panel. The zero value is usable.
type Config struct {
	// ID is the DOM id of the panel, "routing-panel" by default.
	ID string

	// ControllerNamespace qualifies controller names that do not start
	// with a backslash, "controllers" by default.
	ControllerNamespace string

	// EditorURI is the template of "open in editor" links.
	EditorURI string

	// Palette holds one CSS color per highlight class. Missing entries
	// are taken from DefaultPalette.
	Palette []string

	// Logger receives recovered panics and render errors. Defaults to
	// stderr with a "routingpanel: " prefix.
	Logger fasthttp.Logger

	// Metrics is optional.
	Metrics *Metrics

	// Resolver locates controller actions in the source. When it has no
	// answer, the route handler is linked instead.
	Resolver SourceResolver
}

func (cfg Config) withDefaults() Config {
	if cfg.ID == "" {
		cfg.ID = defaultID
	}

	if cfg.ControllerNamespace == "" {
		cfg.ControllerNamespace = defaultControllerNamespace
	}

	if cfg.EditorURI == "" {
		cfg.EditorURI = DefaultEditorURI
	}

	palette := DefaultPalette()
	copy(palette, cfg.Palette)
	cfg.Palette = palette

	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "routingpanel: ", log.LstdFlags)
	}

	return cfg
}
