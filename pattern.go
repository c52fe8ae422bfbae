package router

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/fasthttp/routingpanel/brackets"
)

const (
	defaultParamPattern  = "[^/]+"
	wildcardParamPattern = ".*"

	matchTimeout = 100 * time.Millisecond
)

// compiledPath is a path template turned into a match pattern.
type compiledPath struct {
	template string
	pattern  string
	params   []string
	regex    *regexp2.Regexp
}

// compilePath builds the match pattern of a path template.
//
//	{name}        one segment
//	{name:regex}  a segment matching regex, which may contain '{' and '}'
//	{name:*}      everything left, only at the end of the path
//	/{name?}      an optional trailing segment
//
// Every pattern is anchored at the start and ends with the trailing slash
// assertion, so "/users/1/" matches "/users/{id}" too.
func compilePath(path string) compiledPath {
	groups := brackets.FindGroups(path, '{', '}', brackets.ModeTemplate)
	segments := brackets.Split(path, groups)

	cp := compiledPath{template: path}

	var sb strings.Builder
	sb.WriteByte('^')

	for i, seg := range segments {
		if !seg.IsGroup() {
			if strings.ContainsAny(seg.Text, "{}") {
				panic("unbalanced braces in path '" + path + "'")
			}

			// An optional param owns the slash before it
			if i+1 < len(segments) && isOptionalParam(segments[i+1].Text) {
				if !strings.HasSuffix(seg.Text, "/") {
					panic("optional params must follow a '/' in path '" + path + "'")
				}

				sb.WriteString(regexp2.Escape(seg.Text[:len(seg.Text)-1]))
				continue
			}

			sb.WriteString(regexp2.Escape(seg.Text))
			continue
		}

		if i > 0 && segments[i-1].IsGroup() {
			panic("the wildcards must be separated by at least 1 char in path '" + path + "'")
		}

		last := i == len(segments)-1
		name, expr, optional := parseParam(seg.Text, path)

		if expr == wildcardParamPattern && !last {
			panic("wildcard routes are only allowed at the end of the path in path '" + path + "'")
		}

		if optional {
			if !last {
				panic("optional params are only allowed at the end of the path in path '" + path + "'")
			}

			sb.WriteString("(?:/(" + expr + "))?")
		} else {
			sb.WriteString("(" + expr + ")")
		}

		for _, p := range cp.params {
			if p == name {
				panic("duplicated param '" + name + "' in path '" + path + "'")
			}
		}

		cp.params = append(cp.params, name)
	}

	sb.WriteString(brackets.TrailingAnchor)

	cp.pattern = sb.String()
	cp.regex = regexp2.MustCompile(cp.pattern, regexp2.None)
	cp.regex.MatchTimeout = matchTimeout

	return cp
}

func isOptionalParam(group string) bool {
	name, _, _ := strings.Cut(group[1:len(group)-1], ":")
	return strings.HasSuffix(name, "?")
}

// parseParam splits a "{name:regex}" group into its name and the
// expression matching its value.
func parseParam(group, path string) (name, expr string, optional bool) {
	name, expr, withRegex := strings.Cut(group[1:len(group)-1], ":")

	if strings.HasSuffix(name, "?") {
		name = name[:len(name)-1]
		optional = true
	}

	switch {
	case len(name) == 0:
		panic("wildcards must be named with a non-empty name in path '" + path + "'")
	case strings.ContainsAny(name, "{}/"):
		panic("the char '" + name + "' is not allowed in the param name in path '" + path + "'")
	}

	switch {
	case !withRegex:
		return name, defaultParamPattern, optional
	case expr == "*":
		if optional {
			panic("wildcards can not be optional in path '" + path + "'")
		}

		return name, wildcardParamPattern, optional
	}

	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		panic("invalid regex for param '" + name + "' in path '" + path + "': " + err.Error())
	}

	if len(re.GetGroupNumbers()) > 1 {
		panic("the regex of param '" + name + "' must not contain capturing groups in path '" + path + "', use (?:...)")
	}

	return name, expr, optional
}

// match matches path against the compiled pattern. Matched params are
// returned in template order; params of an absent optional segment are
// left out. tsr reports a trailing slash the pattern did not consume.
func (cp *compiledPath) match(path string) (values map[string]string, tsr, ok bool) {
	m, err := cp.regex.FindStringMatch(path)
	if err != nil || m == nil {
		return nil, false, false
	}

	values = make(map[string]string, len(cp.params))
	for i, name := range cp.params {
		g := m.GroupByNumber(i + 1)
		if g == nil || len(g.Captures) == 0 {
			continue
		}

		values[name] = g.String()
	}

	tsr = len(m.String()) < len(path)

	return values, tsr, true
}
