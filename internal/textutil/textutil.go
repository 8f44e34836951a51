// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil provides keyword-indicator counting and name
// tokenization shared by session-type classification, exclusion
// filtering, and author-affinity matching.
package textutil

import "strings"

// CountIndicators returns the number of distinct vocabulary terms present
// in text. Matching is substring-based; callers lowercase both sides by
// convention (the vocabularies here are all lowercase).
func CountIndicators(text string, vocab []string) int {
	count := 0
	for _, term := range vocab {
		if strings.Contains(text, term) {
			count++
		}
	}
	return count
}

// ContainsAny reports whether any vocabulary term appears in text.
func ContainsAny(text string, vocab []string) bool {
	for _, term := range vocab {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// NameTokens splits a person's name into comparison tokens: lowercased,
// whitespace-separated, trailing periods and commas stripped, tokens of
// length <= 1 dropped. This keeps "J." initials from defeating superset
// matching.
func NameTokens(name string) []string {
	fields := strings.Fields(strings.ToLower(name))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimRight(f, ".,")
		if len(f) <= 1 {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// TokenSupersetMatch reports whether every token of want appears among the
// tokens of have. It tolerates missing middle initials or suffixes on
// either side: "Jane Doe" matches "Jane A. Doe" and vice versa is not
// required.
func TokenSupersetMatch(want, have string) bool {
	wantTokens := NameTokens(want)
	if len(wantTokens) == 0 {
		return false
	}
	haveSet := make(map[string]bool)
	for _, tok := range NameTokens(have) {
		haveSet[tok] = true
	}
	for _, tok := range wantTokens {
		if !haveSet[tok] {
			return false
		}
	}
	return true
}
