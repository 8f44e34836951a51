// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstracts

import "strings"

// minNameLen is the shortest accepted author name. Shorter fragments are
// artifacts of splitting (stray initials, degree suffixes).
const minNameLen = 3

// SplitAuthorList parses a raw author field like
//
//	"Jane Doe (MIT), John Smith (Dept. of Genetics, Stanford)"
//
// into discrete names. The split happens on commas at parenthesis depth
// zero only, so commas inside affiliations never break a name. Each
// segment keeps the substring before its first parenthesis; candidates
// shorter than minNameLen are discarded.
func SplitAuthorList(field string) []string {
	var segments []string
	var current strings.Builder
	depth := 0

	for _, r := range field {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				segments = append(segments, current.String())
				current.Reset()
				continue
			}
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		segments = append(segments, current.String())
	}

	var names []string
	for _, seg := range segments {
		name := seg
		if i := strings.IndexByte(name, '('); i >= 0 {
			name = name[:i]
		}
		name = strings.TrimSpace(name)
		if len(name) < minNameLen {
			continue
		}
		names = append(names, name)
	}
	return names
}
