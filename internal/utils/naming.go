package utils

import (
	"strings"
	"unicode"
)

// CamelCase lowercases the leading run of one identifier:
// "UserController" -> "userController", "HTTPProxy" -> "httpProxy".
func CamelCase(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	// lowercase the leading uppercase run, keeping the last capital of an
	// acronym when it starts the next word
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	switch {
	case upper == 0:
		return name
	case upper == len(runes):
		return strings.ToLower(name)
	case upper == 1:
		runes[0] = unicode.ToLower(runes[0])
	default:
		for i := 0; i < upper-1; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	}
	return string(runes)
}

// StripSuffix removes one trailing suffix if present
func StripSuffix(name, suffix string) string {
	if suffix != "" && strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
		return name[:len(name)-len(suffix)]
	}
	return name
}
