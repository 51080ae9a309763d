package search

import (
	"path/filepath"
	"strings"
)

const (
	LanguageJSON      = "json"
	LanguageJSONC     = "jsonc"
	LanguagePlainText = "plaintext"
)

// DetectLanguage derives a language id from a file name extension.
func DetectLanguage(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "":
		return LanguagePlainText
	case "json", "geojson":
		return LanguageJSON
	case "jsonc", "code-workspace":
		return LanguageJSONC
	default:
		return ext
	}
}
