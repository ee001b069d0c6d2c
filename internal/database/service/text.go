package service

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase capitalizes the first letter of each word and lowercases the rest
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
