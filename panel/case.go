package panel

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// pascalCase turns "user-profiles/edit-form" into "UserProfiles/EditForm".
func pascalCase(dashed string) string {
	caser := cases.Title(language.Und, cases.NoLower)

	parts := strings.Split(dashed, "/")
	for i, part := range parts {
		words := strings.Split(part, "-")
		for j, word := range words {
			words[j] = caser.String(word)
		}

		parts[i] = strings.Join(words, "")
	}

	return strings.Join(parts, "/")
}
