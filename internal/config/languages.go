package config

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageName returns the English name of an ISO 639-1 code, followed by
// its native name when that differs, e.g. "Korean (한국어)".
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	english := display.English.Languages().Name(tag)
	if english == "" {
		return code
	}
	if native := display.Self.Name(tag); native != "" && native != english {
		return english + " (" + native + ")"
	}
	return english
}
