package panel

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/fasthttp/routingpanel/brackets"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
	"github.com/valyala/bytebufferpool"
)

// Highlight escapes input for HTML and wraps every top level group in a
// <span class="cN"> element, N cycling through the palette.
func Highlight(input string, open, close rune, mode brackets.Mode) template.HTML {
	groups := brackets.FindGroups(input, open, close, mode)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, seg := range brackets.Split(input, groups) {
		if !seg.IsGroup() {
			template.HTMLEscape(buf, []byte(seg.Text))
			continue
		}

		buf.WriteString(`<span class="c`)
		buf.WriteString(strconv.Itoa(brackets.ClassIndex(seg.Group)))
		buf.WriteString(`">`)
		template.HTMLEscape(buf, []byte(seg.Text))
		buf.WriteString(`</span>`)
	}

	return template.HTML(buf.String())
}

// HighlightMatch highlights the capture groups of a match pattern.
func HighlightMatch(pattern string) template.HTML {
	return Highlight(pattern, '(', ')', brackets.ModeRegex)
}

// HighlightReverse highlights the placeholders of a path template.
func HighlightReverse(tpl string) template.HTML {
	return Highlight(tpl, '{', '}', brackets.ModeTemplate)
}

// DefaultPalette returns PaletteSize evenly spaced hues.
func DefaultPalette() []string {
	palette := make([]string, brackets.PaletteSize)
	for i := range palette {
		hue := float64(i) * 360 / brackets.PaletteSize
		palette[i] = colorful.Hsl(hue, 0.7, 0.4).Hex()
	}

	return palette
}

// PaletteCSS returns the highlight class rules for colors, scoped to the
// element with the given id. Every color must be a valid CSS color.
func PaletteCSS(id string, colors []string) (template.CSS, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, color := range colors {
		c, err := csscolorparser.Parse(color)
		if err != nil {
			return "", fmt.Errorf("palette color %d %q: %w", i, color, err)
		}

		fmt.Fprintf(buf, "#%s .c%d{color:%s}", id, i, c.HexString())
	}

	return template.CSS(buf.String()), nil
}
