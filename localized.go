package router

// Localized holds one value per language, remembering the order in which
// languages were added. Values that are not localized live under the
// empty language.
//
// The zero value is ready to use.
type Localized[T any] struct {
	langs  []string
	values map[string]T
}

// Set stores the value for lang. Re-setting a language keeps its
// original position.
func (l *Localized[T]) Set(lang string, value T) {
	if l.values == nil {
		l.values = make(map[string]T)
	}

	if _, ok := l.values[lang]; !ok {
		l.langs = append(l.langs, lang)
	}

	l.values[lang] = value
}

// Get returns the value stored for lang.
func (l Localized[T]) Get(lang string) (T, bool) {
	v, ok := l.values[lang]
	return v, ok
}

// First returns the value of the first added language.
func (l Localized[T]) First() (T, bool) {
	if len(l.langs) == 0 {
		var zero T
		return zero, false
	}

	return l.values[l.langs[0]], true
}

// Langs returns the languages in insertion order.
func (l Localized[T]) Langs() []string {
	return append([]string(nil), l.langs...)
}

// Len returns the number of languages.
func (l Localized[T]) Len() int {
	return len(l.langs)
}
