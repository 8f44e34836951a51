// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the conference-planner
// pipeline: extracted talk records, the user's research profile, and the
// ranked/conflict-annotated views derived from them.
package types

import (
	"fmt"
	"strings"
)

// SessionType classifies how a conference record is presented.
type SessionType string

const (
	SessionTalk   SessionType = "talk"
	SessionPoster SessionType = "poster"
)

// Valid reports whether s is a recognized session type.
func (s SessionType) Valid() bool {
	return s == SessionTalk || s == SessionPoster
}

// Talk is one talk or poster recovered from a conference abstract book.
// A Talk is only materialized when it has a non-empty title and an
// abstract of at least MinAbstractLen characters; instances are immutable
// for the remainder of a run.
type Talk struct {
	// ID is unique within an extraction batch. It is derived from the
	// record's position in the batch, not from content, since titles may
	// repeat or be absent in the source text.
	ID string `json:"id" yaml:"id"`

	// Title is the talk title, possibly joined from two wrapped lines.
	Title string `json:"title" yaml:"title"`

	// Abstract is the full abstract text with line breaks collapsed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists author names in source order, affiliations stripped.
	Authors []string `json:"authors" yaml:"authors"`

	// SessionType is "talk" or "poster".
	SessionType SessionType `json:"session_type" yaml:"session_type"`

	// Day is the presentation day (e.g. "Wednesday, October 15"). Empty
	// when the source section carried no schedule line.
	Day string `json:"day,omitempty" yaml:"day,omitempty"`

	// Time is the presentation time range (e.g. "5:00 pm – 6:00 pm").
	Time string `json:"time,omitempty" yaml:"time,omitempty"`

	// Location is the room or hall, when present.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// SessionName is the enclosing session title, when present.
	SessionName string `json:"session_name,omitempty" yaml:"session_name,omitempty"`
}

// MinAbstractLen is the minimum abstract length for a valid Talk.
const MinAbstractLen = 50

// SearchableText returns the text form used for embedding: title,
// abstract, and the author list.
func (t Talk) SearchableText() string {
	return fmt.Sprintf("%s\n%s\nAuthors: %s", t.Title, t.Abstract, strings.Join(t.Authors, ", "))
}

// SlotKey returns the day/time grouping key used for conflict detection.
// ok is false when either field is missing; such records never conflict.
func (t Talk) SlotKey() (string, bool) {
	if t.Day == "" || t.Time == "" {
		return "", false
	}
	return t.Day + "_" + t.Time, true
}
