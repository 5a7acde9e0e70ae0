// Package slug converts display strings into URL-safe identifiers.
//
// Slugs are the identity used by every taxonomy comparison in the
// pipeline: category and tag lookups always compare slug-to-slug, never
// raw strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespace matches any internal run of whitespace characters.
	whitespace = regexp.MustCompile(`\s+`)
	// disallowed matches anything outside the word class and hyphens.
	disallowed = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	// multiHyphen collapses consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts text into a lowercase, dasherized slug.
//
// The transformation is idempotent: From(From(s)) == From(s).
func From(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = whitespace.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = multiHyphen.ReplaceAllString(s, "-")
	return s
}
