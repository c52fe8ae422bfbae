// Package brackets finds top level delimited groups in route patterns and
// templates, so they can be colored when rendered.
package brackets

// PaletteSize is the number of highlight classes groups cycle through.
const PaletteSize = 6

// TrailingAnchor is the end of path assertion appended to every match
// pattern. It is never reported as a group when it comes last.
const TrailingAnchor = "(?=/$|$)"

// Mode selects how open delimiters are interpreted.
type Mode uint8

const (
	// ModeTemplate counts every unescaped open/close delimiter.
	ModeTemplate Mode = iota

	// ModeRegex treats an open delimiter followed by '?' as a
	// non-reportable group that only changes the nesting depth.
	ModeRegex
)

// Group is a balanced top level region of the input, delimiters included.
// Start and End are inclusive code point offsets.
type Group struct {
	Text  string
	Start int
	End   int
}

// FindGroups returns the top level groups of input delimited by open and
// close, in order of appearance.
//
// Delimiters preceded by an odd number of backslashes are literal. Groups
// left unclosed at the end of input are discarded.
//
// It panics if open and close are the same rune.
func FindGroups(input string, open, close rune, mode Mode) []Group {
	if open == close {
		panic("open and close delimiters must differ, got '" + string(open) + "' twice")
	}

	runes := []rune(input)
	groups := make([]Group, 0)

	depth := 0
	groupBegin := -1
	paramLevel := -1

	for i, c := range runes {
		if c != open && c != close {
			continue
		}

		if escaped(runes, i) {
			continue
		}

		if c == open {
			if mode == ModeRegex && i+1 < len(runes) && runes[i+1] == '?' {
				depth++
				continue
			}

			if groupBegin == -1 {
				groupBegin = i
				paramLevel = depth
			}

			depth++
			continue
		}

		if depth == 0 {
			// stray close
			continue
		}

		depth--

		if groupBegin != -1 && depth == paramLevel {
			groups = append(groups, Group{
				Text:  string(runes[groupBegin : i+1]),
				Start: groupBegin,
				End:   i,
			})
			groupBegin = -1
			paramLevel = -1
		}
	}

	if n := len(groups); n > 0 && groups[n-1].Text == TrailingAnchor {
		groups = groups[:n-1]
	}

	return groups
}

// escaped reports whether the rune at pos is preceded by an odd run of
// backslashes.
func escaped(runes []rune, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && runes[i] == '\\'; i-- {
		n++
	}

	return n%2 == 1
}

// ClassIndex returns the highlight class for the i-th group.
func ClassIndex(i int) int {
	return i % PaletteSize
}
