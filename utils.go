package router

import "strings"

func validatePath(path string) {
	switch {
	case len(path) == 0 || !strings.HasPrefix(path, "/"):
		panic("path must begin with '/' in path '" + path + "'")
	}
}

func validateGroupPath(path string) {
	validatePath(path)

	if len(path) > 1 && strings.HasSuffix(path, "/") {
		panic("group path must not end with '/' in path '" + path + "'")
	}
}
