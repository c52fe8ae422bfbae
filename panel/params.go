package panel

import (
	"fmt"
	"html/template"
	"sort"

	"github.com/davecgh/go-spew/spew"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Param is a rendered name/value pair.
type Param struct {
	Name  string
	Value template.HTML
}

// paramSet is an insertion ordered set of param values.
type paramSet struct {
	keys   []string
	values map[string]interface{}
}

func newParamSet() *paramSet {
	return &paramSet{values: make(map[string]interface{})}
}

func (s *paramSet) set(key string, value interface{}) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}

	s.values[key] = value
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// renderValue renders strings quoted and anything else as a collapsed
// dump.
func renderValue(value interface{}) template.HTML {
	switch v := value.(type) {
	case nil:
		return `<span class="dump-null">nil</span>`
	case string:
		return template.HTML(`<span class="dump-string">"` + template.HTMLEscapeString(v) + `"</span>`)
	}

	return template.HTML(fmt.Sprintf(
		`<details class="dump"><summary>%s</summary><pre>%s</pre></details>`,
		template.HTMLEscapeString(fmt.Sprintf("%T", value)),
		template.HTMLEscapeString(dumper.Sdump(value)),
	))
}
