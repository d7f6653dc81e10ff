package core

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var wordSeparators = regexp.MustCompile(`[\s_-]+`)

// NormalizeTypeName returns the case-insensitive lookup form of a type name.
func NormalizeTypeName(name string) (string, error) {
	if name == "" {
		return "", errors.New("type name is required")
	}
	return strings.ToLower(name), nil
}

// CamelCase joins words into lowerCamelCase. Each word is further split on
// spaces, underscores and hyphens; the first token is lower-cased and every
// following token is title-cased.
//
//	CamelCase("start", "day")        // "startDay"
//	CamelCase("hello-world_lovely")  // "helloWorldLovely"
func CamelCase(words ...string) string {
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	var b strings.Builder
	first := true
	for _, w := range words {
		for _, part := range wordSeparators.Split(w, -1) {
			if part == "" {
				continue
			}
			if first {
				b.WriteString(lower.String(part))
				first = false
				continue
			}
			b.WriteString(title.String(part))
		}
	}
	return b.String()
}
