package form

import (
	"regexp"
	"strings"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases name and joins its alphanumeric runs with hyphens
func Slugify(name string) string {
	slug := nonSlugRun.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
