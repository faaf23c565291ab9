package utils

import (
	"net/url"
	"strings"
)

// Slugify lowercases name, turns spaces into hyphens and query-escapes the rest.
func Slugify(name string) string {
	return url.QueryEscape(strings.ReplaceAll(strings.ToLower(name), " ", "-"))
}

// NormalizeSlug maps a slug taken from a request path to its stored form.
// Paths usually arrive unescaped and are re-slugified; a value that already is
// a stored slug is returned as is.
func NormalizeSlug(raw string) string {
	if decoded, err := url.PathUnescape(raw); err == nil && Slugify(decoded) == raw {
		return raw
	}
	return Slugify(raw)
}
