package panel

import (
	"html/template"
	"testing"

	"github.com/fasthttp/routingpanel/brackets"
	"github.com/mazznoer/csscolorparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  rune
		close rune
		mode  brackets.Mode
		want  template.HTML
	}{
		{
			name:  "no groups",
			input: "/users/list",
			open:  '(',
			close: ')',
			mode:  brackets.ModeRegex,
			want:  "/users/list",
		},
		{
			name:  "match pattern drops the trailing anchor",
			input: `^/users/([0-9]+)(?=/$|$)`,
			open:  '(',
			close: ')',
			mode:  brackets.ModeRegex,
			want:  `^/users/<span class="c0">([0-9]+)</span>(?=/$|$)`,
		},
		{
			name:  "optional segment",
			input: `^/users(?:/([^/]+))?(?=/$|$)`,
			open:  '(',
			close: ')',
			mode:  brackets.ModeRegex,
			want:  `^/users(?:/<span class="c0">([^/]+)</span>)?(?=/$|$)`,
		},
		{
			name:  "template",
			input: "/posts/{year:[0-9]{4}}/{slug}",
			open:  '{',
			close: '}',
			mode:  brackets.ModeTemplate,
			want:  `/posts/<span class="c0">{year:[0-9]{4}}</span>/<span class="c1">{slug}</span>`,
		},
		{
			name:  "escapes text and groups",
			input: "a<b>(c&d)",
			open:  '(',
			close: ')',
			mode:  brackets.ModeTemplate,
			want:  `a&lt;b&gt;<span class="c0">(c&amp;d)</span>`,
		},
		{
			name:  "named groups keep their brackets escaped",
			input: "<x>",
			open:  '<',
			close: '>',
			mode:  brackets.ModeTemplate,
			want:  `<span class="c0">&lt;x&gt;</span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.input, tt.open, tt.close, tt.mode))
		})
	}
}

func TestHighlightCyclesClasses(t *testing.T) {
	got := HighlightReverse("{a}{b}{c}{d}{e}{f}{g}")

	assert.Equal(t, template.HTML(
		`<span class="c0">{a}</span><span class="c1">{b}</span><span class="c2">{c}</span>`+
			`<span class="c3">{d}</span><span class="c4">{e}</span><span class="c5">{f}</span>`+
			`<span class="c0">{g}</span>`,
	), got)
}

func TestDefaultPalette(t *testing.T) {
	palette := DefaultPalette()
	require.Len(t, palette, brackets.PaletteSize)

	seen := make(map[string]bool)
	for _, color := range palette {
		_, err := csscolorparser.Parse(color)
		require.NoError(t, err, color)

		assert.False(t, seen[color], "duplicated color %s", color)
		seen[color] = true
	}
}

func TestPaletteCSS(t *testing.T) {
	css, err := PaletteCSS("rp", []string{"red", "#00f"})
	require.NoError(t, err)
	assert.Equal(t, template.CSS("#rp .c0{color:#ff0000}#rp .c1{color:#0000ff}"), css)

	_, err = PaletteCSS("rp", []string{"red", "not-a-color"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "palette color 1")
}
