// Package format rewrites generated text into the plain markup chat clients render.
package format

import (
	"regexp"
	"strings"
)

// markdownLinkRe matches [label](url) lazily so two links on one line stay separate.
var markdownLinkRe = regexp.MustCompile(`\[.*?\]\((.*?)\)`)

// Text collapses doubled emphasis markers and replaces markdown links with their URL.
func Text(raw string) string {
	return StripLinks(CollapseEmphasis(raw))
}

// CollapseEmphasis turns "**", "__" and "~~" into a single marker.
func CollapseEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "*")
	s = strings.ReplaceAll(s, "__", "_")
	return strings.ReplaceAll(s, "~~", "~")
}

// StripLinks keeps only the URL of every [label](url).
func StripLinks(s string) string {
	return markdownLinkRe.ReplaceAllString(s, "${1}")
}
