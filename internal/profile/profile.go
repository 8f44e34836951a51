// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile loads and saves the research-profile markdown file.
// The file is meant to be edited by hand: bullet sections for interests,
// exclusion topics, and authors of interest, plus an optional free-text
// supplementary block. Placeholder "NA" entries are ignored on load.
package profile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/conference-planner/pkg/types"
)

// DefaultFileName is the profile file looked up in the conference
// directory when no explicit path is given.
const DefaultFileName = "research_interests.md"

const (
	focusHeading         = "## My Research Focus"
	excludeHeading       = "## Topics to Exclude"
	authorsHeading       = "## Authors of Interest"
	supplementaryHeading = "## Supplementary Text"
)

// placeholder marks an intentionally empty bullet section.
const placeholder = "NA"

// Load parses a research-profile markdown file. Unknown sections are
// ignored, so users can keep their own notes in the file.
func Load(path string) (types.ResearchProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.ResearchProfile{}, fmt.Errorf("opening profile: %w", err)
	}
	defer f.Close()

	var (
		p          types.ResearchProfile
		section    string
		supplement []string
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "## ") {
			section = trimmed
			continue
		}

		switch section {
		case focusHeading:
			if item, ok := bulletItem(trimmed); ok {
				p.Interests = append(p.Interests, item)
			}
		case excludeHeading:
			if item, ok := bulletItem(trimmed); ok {
				p.ExclusionTopics = append(p.ExclusionTopics, item)
			}
		case authorsHeading:
			if item, ok := bulletItem(trimmed); ok {
				p.AuthorsOfInterest = append(p.AuthorsOfInterest, item)
			}
		case supplementaryHeading:
			supplement = append(supplement, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return types.ResearchProfile{}, fmt.Errorf("reading profile: %w", err)
	}

	if text := strings.TrimSpace(strings.Join(supplement, "\n")); text != placeholder {
		p.SupplementaryText = text
	}
	return p, nil
}

// bulletItem extracts the text of a markdown bullet. Non-bullet lines
// and NA placeholders report ok=false.
func bulletItem(line string) (string, bool) {
	var item string
	switch {
	case strings.HasPrefix(line, "- "):
		item = strings.TrimSpace(line[2:])
	case strings.HasPrefix(line, "* "):
		item = strings.TrimSpace(line[2:])
	default:
		return "", false
	}
	if item == "" || item == placeholder {
		return "", false
	}
	return item, true
}

// Save writes the profile back in the canonical layout. Empty sections
// get an NA placeholder so the headings survive round trips.
func Save(path string, p types.ResearchProfile) error {
	var b strings.Builder

	b.WriteString("# Research Profile\n")
	writeBulletSection(&b, focusHeading, p.Interests)
	writeBulletSection(&b, excludeHeading, p.ExclusionTopics)
	writeBulletSection(&b, authorsHeading, p.AuthorsOfInterest)

	fmt.Fprintf(&b, "\n%s\n\n", supplementaryHeading)
	if p.SupplementaryText == "" {
		b.WriteString(placeholder + "\n")
	} else {
		b.WriteString(p.SupplementaryText + "\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

func writeBulletSection(b *strings.Builder, heading string, items []string) {
	fmt.Fprintf(b, "\n%s\n\n", heading)
	if len(items) == 0 {
		fmt.Fprintf(b, "- %s\n", placeholder)
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

// Init creates a starter profile at path unless one already exists.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("profile already exists: %s", path)
	}
	return Save(path, types.ResearchProfile{})
}
