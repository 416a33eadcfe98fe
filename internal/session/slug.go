package session

import (
	"regexp"
	"strings"
)

var (
	unsafeChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns  = regexp.MustCompile(`-+`)
)

// Slug converts a session name to a filename-safe slug.
// Example: "Standup Notes: Monday" -> "standup-notes-monday"
func Slug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = unsafeChars.ReplaceAllString(slug, "")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return "session"
	}

	return slug
}

// Filename returns the export file name for s.
func (s Session) Filename() string {
	return Slug(s.Name) + ".txt"
}
