package tenant

import (
	"net/url"
	"regexp"
	"strconv"
)

// Page context keys recognized by the resolver.
const (
	QuerySubject   = "subject"
	QueryTerm      = "sem"
	MetaSubjectTag = "subject-id"
)

var subjectPathPattern = regexp.MustCompile(`/subjects/([^/]+)/`)

// Page is the context of the page a caller is on: its URL and any
// page-level metadata tags.
type Page struct {
	URL  string
	Meta map[string]string
}

// ResolveSubject derives the subject identifier from page context.
// Resolution order, first non-empty match wins:
//
//  1. the "subject" query parameter,
//  2. a "/subjects/{name}/" segment in the URL path (percent-decoded),
//  3. the "subject-id" metadata tag.
//
// Returns false when none match; callers must treat the tenant path as
// unresolved rather than defaulting to anything.
func ResolveSubject(page Page) (string, bool) {
	u, err := url.Parse(page.URL)
	if err == nil {
		if s := u.Query().Get(QuerySubject); s != "" {
			return s, true
		}
		// Match the raw path so the segment is decoded exactly once.
		if m := subjectPathPattern.FindStringSubmatch(u.EscapedPath()); m != nil {
			if s, err := url.PathUnescape(m[1]); err == nil && s != "" {
				return s, true
			}
		}
	}
	if s := page.Meta[MetaSubjectTag]; s != "" {
		return s, true
	}
	return "", false
}

// ResolveTerm derives the catalog term number from the "sem" query
// parameter, defaulting to 1.
func ResolveTerm(page Page) int {
	u, err := url.Parse(page.URL)
	if err != nil {
		return 1
	}
	n, err := strconv.Atoi(u.Query().Get(QueryTerm))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
