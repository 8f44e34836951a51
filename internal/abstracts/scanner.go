// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package abstracts recovers structured talk records from the flattened
// text of a conference abstract book. The text is line-oriented with no
// reliable record delimiters, so extraction pivots on the "Authors:"
// field, which is present for both talks and posters. For each anchor the
// scanner walks backward to recover the title and forward to collect the
// author list, abstract, and schedule metadata.
package abstracts

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/conference-planner/pkg/types"
)

const (
	authorsLabel  = "Authors:"
	abstractLabel = "Abstract:"
	locationLabel = "Location:"

	// titleScanWindow bounds the backward title search from an anchor.
	titleScanWindow = 8

	// maxTitleLines is how many wrapped lines may be joined into a title.
	maxTitleLines = 2
)

// fieldLabels are line prefixes recognized as metadata fields. They end
// forward accumulation of the author field and are skipped (without
// terminating) during the backward title scan.
var fieldLabels = []string{
	authorsLabel,
	abstractLabel,
	locationLabel,
	"Time:",
	"Subsession Time:",
	"Session:",
}

// boundaryPrefixes mark document-wide boilerplate: running headers, legend
// lines, and table-of-contents markers. Hitting one terminates the
// backward title scan.
var boundaryPrefixes = []string{
	"ASHG",
	"indicates",
	"Table of Contents",
	"Contents",
}

// sessionBannerRE matches section banners like "Session 42: Statistical
// Genetics". Banners terminate the backward title scan.
var sessionBannerRE = regexp.MustCompile(`^Session \d+[.:]`)

// dayTimeRE captures day and time from schedule lines of the form
// "Subsession Time: Wednesday, October 15 at 5:00 pm – 6:00 pm".
var dayTimeRE = regexp.MustCompile(`(\w+, \w+ \d+) at ([\d:apm\x{2013}\x{2014} –-]+)`)

// Summary holds counts from one extraction run.
type Summary struct {
	Extracted int
	Skipped   int
}

// Extractor converts flattened abstract-book text into Talk records.
type Extractor struct {
	// DefaultSessionType is assigned when a section carries neither
	// poster- nor talk-indicating vocabulary.
	DefaultSessionType types.SessionType
}

// Extract scans text and returns the recovered talks in document order.
// Extraction is best-effort per anchor: a section that fails to yield a
// title and a sufficiently long abstract is reported to w and skipped,
// never aborting the batch. Empty input yields zero records. Running
// Extract twice on identical text yields identical results.
func (e *Extractor) Extract(text string, w io.Writer) ([]types.Talk, Summary) {
	defaultType := e.DefaultSessionType
	if !defaultType.Valid() {
		defaultType = types.SessionPoster
	}

	lines := strings.Split(text, "\n")
	anchors := findAnchors(lines)

	var talks []types.Talk
	var summary Summary

	for idx, anchor := range anchors {
		sectionEnd := len(lines)
		if idx+1 < len(anchors) {
			sectionEnd = anchors[idx+1]
		}

		talk, ok, reason := e.extractSection(lines, anchor, sectionEnd, defaultType)
		if !ok {
			summary.Skipped++
			if w != nil {
				fmt.Fprintf(w, "skipped anchor at line %d: %s\n", anchor+1, reason)
			}
			continue
		}

		talk.ID = fmt.Sprintf("talk-%04d", len(talks)+1)
		talks = append(talks, talk)
		summary.Extracted++
	}

	return talks, summary
}

// findAnchors returns the indices of all "Authors:" lines.
func findAnchors(lines []string) []int {
	var anchors []int
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), authorsLabel) {
			anchors = append(anchors, i)
		}
	}
	return anchors
}

// extractSection assembles one Talk from the section surrounding an
// anchor. sectionEnd is the index of the next anchor (or end of input).
// On failure it returns ok=false and a diagnostic reason.
func (e *Extractor) extractSection(lines []string, anchor, sectionEnd int, defaultType types.SessionType) (types.Talk, bool, string) {
	title, titleStart := scanTitleBackward(lines, anchor)
	if title == "" {
		return types.Talk{}, false, "no title found in backward scan window"
	}

	authorsField, afterAuthors := collectAuthorsField(lines, anchor, sectionEnd)
	abstract := collectAbstract(lines, afterAuthors, sectionEnd)
	if len(abstract) < types.MinAbstractLen {
		return types.Talk{}, false, fmt.Sprintf("abstract too short (%d chars)", len(abstract))
	}

	day, timeRange, location, sessionName := scanSchedule(lines, titleStart, sectionEnd)

	sectionText := strings.ToLower(strings.Join(lines[titleStart:sectionEnd], "\n"))

	return types.Talk{
		Title:       title,
		Abstract:    abstract,
		Authors:     SplitAuthorList(authorsField),
		SessionType: classifySessionType(sectionText, defaultType),
		Day:         day,
		Time:        timeRange,
		Location:    location,
		SessionName: sessionName,
	}, true, ""
}

// scanTitleBackward walks up to titleScanWindow lines above the anchor
// collecting title candidates. It is a small state machine over line
// indices: blank lines are skipped until the first candidate is found and
// terminate the scan afterwards; metadata labels are skipped without
// terminating; section boundaries and session banners terminate
// immediately; noise lines (table-of-contents entries, low alphabetic
// density, abstract prose, mid-sentence fragments) are rejected but do
// not terminate. Up to maxTitleLines qualifying lines are joined in
// document order. Returns the title and the index of its first line, or
// ("", anchor) when no candidate qualifies.
func scanTitleBackward(lines []string, anchor int) (string, int) {
	var collected []string // most recent first
	firstLine := anchor

	low := anchor - titleScanWindow
	if low < 0 {
		low = 0
	}

	for j := anchor - 1; j >= low; j-- {
		line := strings.TrimSpace(lines[j])

		if line == "" {
			if len(collected) == 0 {
				continue
			}
			break
		}

		if isSectionBoundary(line) || sessionBannerRE.MatchString(line) {
			break
		}

		if isFieldLabel(line) {
			continue
		}

		if looksLikeTOCEntry(line) || lowAlphaDensity(line) {
			continue
		}

		if looksLikeProse(line) || startsLowercase(line) {
			continue
		}

		collected = append(collected, line)
		firstLine = j
		if len(collected) == maxTitleLines {
			break
		}
	}

	if len(collected) == 0 {
		return "", anchor
	}

	// collected is most-recent-first; reverse into document order.
	parts := make([]string, len(collected))
	for i, c := range collected {
		parts[len(collected)-1-i] = c
	}
	return strings.Join(parts, " "), firstLine
}

// collectAuthorsField returns the raw author-list text starting after the
// "Authors:" label, including continuation lines that are not themselves
// field labels, and the index of the first line after the field.
func collectAuthorsField(lines []string, anchor, sectionEnd int) (string, int) {
	first := strings.TrimSpace(lines[anchor])
	parts := []string{strings.TrimSpace(strings.TrimPrefix(first, authorsLabel))}

	next := anchor + 1
	for ; next < sectionEnd; next++ {
		line := strings.TrimSpace(lines[next])
		if line == "" || isFieldLabel(line) {
			break
		}
		parts = append(parts, line)
	}

	return strings.TrimSpace(strings.Join(parts, " ")), next
}

// collectAbstract locates the "Abstract:" label at or after start and
// joins all subsequent lines with single spaces until the section ends.
func collectAbstract(lines []string, start, sectionEnd int) string {
	var parts []string
	capturing := false

	for j := start; j < sectionEnd; j++ {
		line := strings.TrimSpace(lines[j])

		if !capturing {
			if strings.HasPrefix(line, abstractLabel) {
				capturing = true
				if rest := strings.TrimSpace(strings.TrimPrefix(line, abstractLabel)); rest != "" {
					parts = append(parts, rest)
				}
			}
			continue
		}

		if line == "" {
			continue
		}
		parts = append(parts, line)
	}

	return strings.Join(parts, " ")
}

// scanSchedule extracts day/time from a "Subsession Time:" or "Session:"
// line, the room from a "Location:" line, and the session name from a
// session banner, scanning the whole section.
func scanSchedule(lines []string, start, sectionEnd int) (day, timeRange, location, sessionName string) {
	for j := start; j < sectionEnd; j++ {
		line := strings.TrimSpace(lines[j])

		switch {
		case strings.HasPrefix(line, "Subsession Time:"), strings.HasPrefix(line, "Session:"):
			if day == "" {
				if m := dayTimeRE.FindStringSubmatch(line); m != nil {
					day = m[1]
					timeRange = strings.TrimSpace(m[2])
				}
			}
		case strings.HasPrefix(line, locationLabel):
			if location == "" {
				location = strings.TrimSpace(strings.TrimPrefix(line, locationLabel))
			}
		case sessionBannerRE.MatchString(line):
			if sessionName == "" {
				sessionName = line
			}
		}
	}
	return day, timeRange, location, sessionName
}

// isFieldLabel reports whether the line starts with a recognized metadata
// field label.
func isFieldLabel(line string) bool {
	for _, label := range fieldLabels {
		if strings.HasPrefix(line, label) {
			return true
		}
	}
	return false
}

// isSectionBoundary reports whether the line is document boilerplate that
// should terminate a backward title scan.
func isSectionBoundary(line string) bool {
	for _, prefix := range boundaryPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// looksLikeTOCEntry rejects table-of-contents entries by punctuation
// density: dotted leaders push the ratio of periods well past anything a
// title produces.
func looksLikeTOCEntry(line string) bool {
	if len(line) == 0 {
		return false
	}
	dots := strings.Count(line, ".")
	return float64(dots)/float64(len(line)) > 0.2
}

// lowAlphaDensity rejects footer and page-number noise: lines where fewer
// than half the characters are letters.
func lowAlphaDensity(line string) bool {
	letters := 0
	runes := []rune(line)
	for _, r := range runes {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters)/float64(len(runes)) < 0.5
}

// proseCues are first-person and methodological phrases that mark a line
// as abstract body text rather than a title.
var proseCues = []string{
	"we ",
	"our ",
	"this study",
	"these results",
	"was performed",
	"were analyzed",
	"we show",
	"we found",
}

// looksLikeProse rejects lines that read as abstract body text: they end
// with a period and contain a first-person or methodological cue.
func looksLikeProse(line string) bool {
	if !strings.HasSuffix(line, ".") {
		return false
	}
	lower := strings.ToLower(line)
	for _, cue := range proseCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// startsLowercase rejects mid-sentence fragments left by line wrapping.
func startsLowercase(line string) bool {
	for _, r := range line {
		return unicode.IsLower(r)
	}
	return false
}
