// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstracts

import (
	"github.com/pdiddy/conference-planner/internal/textutil"
	"github.com/pdiddy/conference-planner/pkg/types"
)

// posterVocab marks a section as a poster presentation.
var posterVocab = []string{
	"poster session",
	"poster board",
	"poster",
}

// talkVocab marks a section as an oral presentation. "subsession time"
// appears only on scheduled platform slots.
var talkVocab = []string{
	"platform",
	"oral presentation",
	"oral",
	"plenary",
	"subsession time",
}

// classifySessionType scans the lowercased section text for poster- and
// talk-indicating vocabulary. Poster indicators win when present since a
// poster mention is the more specific signal; with neither class present
// the configured default applies.
func classifySessionType(sectionText string, defaultType types.SessionType) types.SessionType {
	if textutil.ContainsAny(sectionText, posterVocab) {
		return types.SessionPoster
	}
	if textutil.ContainsAny(sectionText, talkVocab) {
		return types.SessionTalk
	}
	return defaultType
}
