package panel

import (
	router "github.com/fasthttp/routingpanel"
)

// ResolveLocalized picks the value for the requested language, then for
// the default language, then the first one added. It returns the zero
// value when field is empty.
func ResolveLocalized[T any](field router.Localized[T], requested, def string) T {
	if v, ok := field.Get(requested); ok {
		return v
	}

	if v, ok := field.Get(def); ok {
		return v
	}

	v, _ := field.First()

	return v
}
