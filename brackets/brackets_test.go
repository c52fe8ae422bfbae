package brackets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindGroups(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		open   rune
		close  rune
		mode   Mode
		groups []Group
	}{
		{
			name:   "no delimiters",
			input:  "/users/list",
			open:   '(',
			close:  ')',
			mode:   ModeTemplate,
			groups: []Group{},
		},
		{
			name:  "two groups",
			input: "a(bc)d(ef)g",
			open:  '(',
			close: ')',
			mode:  ModeTemplate,
			groups: []Group{
				{Text: "(bc)", Start: 1, End: 4},
				{Text: "(ef)", Start: 6, End: 9},
			},
		},
		{
			name:   "nested group absorbed",
			input:  "(a(b)c)",
			open:   '(',
			close:  ')',
			mode:   ModeTemplate,
			groups: []Group{{Text: "(a(b)c)", Start: 0, End: 6}},
		},
		{
			name:   "escaped delimiters",
			input:  `\(a\)`,
			open:   '(',
			close:  ')',
			mode:   ModeTemplate,
			groups: []Group{},
		},
		{
			name:   "escaped backslash pair",
			input:  `\\(a)`,
			open:   '(',
			close:  ')',
			mode:   ModeTemplate,
			groups: []Group{{Text: "(a)", Start: 2, End: 4}},
		},
		{
			name:   "three backslashes escape",
			input:  `\\\(a)`,
			open:   '(',
			close:  ')',
			mode:   ModeTemplate,
			groups: []Group{},
		},
		{
			name:   "non capturing only",
			input:  "(?:abc)",
			open:   '(',
			close:  ')',
			mode:   ModeRegex,
			groups: []Group{},
		},
		{
			name:   "non capturing nested",
			input:  "(a(?:bc)d)",
			open:   '(',
			close:  ')',
			mode:   ModeRegex,
			groups: []Group{{Text: "(a(?:bc)d)", Start: 0, End: 9}},
		},
		{
			name:   "capture inside non capturing",
			input:  "/a(?:/([^/]+))?",
			open:   '(',
			close:  ')',
			mode:   ModeRegex,
			groups: []Group{{Text: "([^/]+)", Start: 6, End: 12}},
		},
		{
			name:   "named group treated as non capturing",
			input:  "(?<id>[0-9]+)/(x)",
			open:   '(',
			close:  ')',
			mode:   ModeRegex,
			groups: []Group{{Text: "(x)", Start: 14, End: 16}},
		},
		{
			name:   "unbalanced open discarded",
			input:  "(a(b)",
			open:   '(',
			close:  ')',
			mode:   ModeTemplate,
			groups: []Group{},
		},
		{
			name:   "stray close ignored",
			input:  ")(a)",
			open:   '(',
			close:  ')',
			mode:   ModeTemplate,
			groups: []Group{{Text: "(a)", Start: 1, End: 3}},
		},
		{
			name:  "template braces with nested regex quantifier",
			input: "/posts/{year:[0-9]{4}}/{slug}",
			open:  '{',
			close: '}',
			mode:  ModeTemplate,
			groups: []Group{
				{Text: "{year:[0-9]{4}}", Start: 7, End: 21},
				{Text: "{slug}", Start: 23, End: 28},
			},
		},
		{
			name:  "code point offsets",
			input: "/čaj/<id>/ünï<x>",
			open:  '<',
			close: '>',
			mode:  ModeTemplate,
			groups: []Group{
				{Text: "<id>", Start: 5, End: 8},
				{Text: "<x>", Start: 13, End: 15},
			},
		},
		{
			name:   "trailing anchor dropped in template mode",
			input:  "^/users/([0-9]+)(?=/$|$)",
			open:   '(',
			close:  ')',
			mode:   ModeTemplate,
			groups: []Group{{Text: "([0-9]+)", Start: 8, End: 15}},
		},
		{
			name:   "trailing anchor never reported in regex mode",
			input:  "^/users/([0-9]+)(?=/$|$)",
			open:   '(',
			close:  ')',
			mode:   ModeRegex,
			groups: []Group{{Text: "([0-9]+)", Start: 8, End: 15}},
		},
		{
			name:  "anchor kept when not last",
			input: "(?=/$|$)(a)",
			open:  '(',
			close: ')',
			mode:  ModeTemplate,
			groups: []Group{
				{Text: "(?=/$|$)", Start: 0, End: 7},
				{Text: "(a)", Start: 8, End: 10},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			groups := FindGroups(test.input, test.open, test.close, test.mode)
			assert.Equal(t, test.groups, groups)
		})
	}
}

func TestFindGroupsOffsetsMatchText(t *testing.T) {
	input := "/ßtraße/{a}/{b:[a-z]{2}}/ç{c}"
	runes := []rune(input)

	groups := FindGroups(input, '{', '}', ModeTemplate)
	require.Len(t, groups, 3)

	prevEnd := -1
	for _, g := range groups {
		assert.Greater(t, g.Start, prevEnd)
		assert.Equal(t, g.Text, string(runes[g.Start:g.End+1]))
		prevEnd = g.End
	}
}

func TestFindGroupsIdempotent(t *testing.T) {
	input := `^/(a(?:b)c)/\(x\)/([0-9]+)(?=/$|$)`

	first := FindGroups(input, '(', ')', ModeRegex)
	second := FindGroups(input, '(', ')', ModeRegex)

	assert.Equal(t, first, second)
}

func TestFindGroupsSameDelimiters(t *testing.T) {
	assert.Panics(t, func() {
		FindGroups("|a|", '|', '|', ModeTemplate)
	})
}

func TestClassIndex(t *testing.T) {
	got := make([]int, 0, 9)
	for i := 0; i < 9; i++ {
		got = append(got, ClassIndex(i))
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 0, 1, 2}, got)
}

func TestSplit(t *testing.T) {
	input := "a(bc)d(ef)"
	segments := Split(input, FindGroups(input, '(', ')', ModeTemplate))

	assert.Equal(t, []Segment{
		{Text: "a", Group: -1},
		{Text: "(bc)", Group: 0},
		{Text: "d", Group: -1},
		{Text: "(ef)", Group: 1},
	}, segments)

	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	assert.Equal(t, input, sb.String())
}

func TestSplitNoGroups(t *testing.T) {
	assert.Nil(t, Split("", nil))
	assert.Equal(t, []Segment{{Text: "/plain", Group: -1}}, Split("/plain", nil))
}
