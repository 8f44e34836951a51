// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"fmt"
	"strings"

	"github.com/pdiddy/conference-planner/pkg/types"
)

// authorSep joins author names in the stored payload. The extractor never
// leaves commas inside a parsed name, so joining on ", " round-trips.
const authorSep = ", "

// talkPayload flattens a Talk into the string-valued metadata map the
// vector store accepts. Optional fields become empty strings rather than
// being omitted, so every stored record carries the same keys.
func talkPayload(t types.Talk) map[string]string {
	return map[string]string{
		"title":        t.Title,
		"abstract":     t.Abstract,
		"authors":      strings.Join(t.Authors, authorSep),
		"session_type": string(t.SessionType),
		"day":          t.Day,
		"time":         t.Time,
		"location":     t.Location,
		"session_name": t.SessionName,
	}
}

// talkFromPayload restores a Talk from a stored payload. The authors list
// is rebuilt from its serialized form; a payload without a title is
// corrupt and rejected.
func talkFromPayload(id string, payload map[string]string) (types.Talk, error) {
	title := payload["title"]
	if title == "" {
		return types.Talk{}, fmt.Errorf("payload missing title")
	}

	var authors []string
	if raw := payload["authors"]; raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				authors = append(authors, name)
			}
		}
	}

	return types.Talk{
		ID:          id,
		Title:       title,
		Abstract:    payload["abstract"],
		Authors:     authors,
		SessionType: types.SessionType(payload["session_type"]),
		Day:         payload["day"],
		Time:        payload["time"],
		Location:    payload["location"],
		SessionName: payload["session_name"],
	}, nil
}
