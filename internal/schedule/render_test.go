package schedule

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/conference-planner/pkg/types"
)

func pinTime(t *testing.T) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time {
		return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	}
	t.Cleanup(func() { timeNow = orig })
}

func TestRenderMarkdownGroupsByDay(t *testing.T) {
	pinTime(t)

	candidates := []types.RankedCandidate{
		candidate("a", "Thursday, October 16", "9:00 am", 0.8),
		candidate("b", "Wednesday, October 15", "8:00 am", 0.7),
	}
	Sort(candidates)

	out := RenderMarkdown(candidates, nil)

	if !strings.Contains(out, "Generated 2026-10-14 09:30. 2 talks selected.") {
		t.Errorf("missing generation line:\n%s", out)
	}
	thursday := strings.Index(out, "## Thursday, October 16")
	wednesday := strings.Index(out, "## Wednesday, October 15")
	if thursday == -1 || wednesday == -1 || thursday > wednesday {
		t.Errorf("day headers missing or misordered:\n%s", out)
	}
	if strings.Count(out, "## Thursday, October 16") != 1 {
		t.Errorf("day header repeated:\n%s", out)
	}
}

func TestRenderMarkdownConflictMarkers(t *testing.T) {
	pinTime(t)

	candidates := []types.RankedCandidate{
		candidate("a", "Wednesday, October 15", "8:00 am", 0.9),
		candidate("b", "Wednesday, October 15", "8:00 am", 0.5),
	}
	conflicts := Compile(candidates)

	out := RenderMarkdown(candidates, conflicts)

	if !strings.Contains(out, "## Conflicts") {
		t.Errorf("missing conflicts section:\n%s", out)
	}
	if !strings.Contains(out, "Wednesday, October 15 at 8:00 am: 2 talks overlap") {
		t.Errorf("missing conflict line:\n%s", out)
	}
	if got := strings.Count(out, "conflicts with another selected talk"); got != 2 {
		t.Errorf("per-talk conflict notes = %d, want 2", got)
	}
}

func TestRenderMarkdownUnplacedTalk(t *testing.T) {
	pinTime(t)

	candidates := []types.RankedCandidate{candidate("a", "", "", 0.5)}
	out := RenderMarkdown(candidates, nil)

	if !strings.Contains(out, "## Unknown") {
		t.Errorf("unplaced talk not grouped under Unknown:\n%s", out)
	}
	if !strings.Contains(out, "- Time: Unknown") {
		t.Errorf("missing Unknown time line:\n%s", out)
	}
}

func TestRenderMarkdownMatchedAuthors(t *testing.T) {
	pinTime(t)

	c := candidate("a", "Wednesday, October 15", "8:00 am", 0.8)
	c.Talk.Authors = []string{"Jane Doe", "John Smith"}
	c.MatchedAuthors = []string{"Jane Doe"}

	out := RenderMarkdown([]types.RankedCandidate{c}, nil)
	if !strings.Contains(out, "- Matched authors: Jane Doe") {
		t.Errorf("missing matched authors line:\n%s", out)
	}
}

func TestAbstractPreviewTruncatesAtWordBoundary(t *testing.T) {
	abstract := strings.Repeat("genome association ", 40) // well past the limit
	preview := abstractPreview(abstract)
	if len(preview) > 410 {
		t.Errorf("preview too long: %d chars", len(preview))
	}
	if !strings.HasSuffix(preview, "…") {
		t.Errorf("preview not marked as truncated: %q", preview[len(preview)-20:])
	}

	short := "Short abstract."
	if abstractPreview(short) != short {
		t.Error("short abstract should pass through unchanged")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	pinTime(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.yaml")

	candidates := []types.RankedCandidate{
		candidate("a", "Wednesday, October 15", "8:00 am", 0.9),
		candidate("b", "Wednesday, October 15", "8:00 am", 0.5),
	}
	conflicts := Compile(candidates)

	if err := WriteYAML(path, candidates, conflicts); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var export Export
	if err := yaml.Unmarshal(data, &export); err != nil {
		t.Fatal(err)
	}
	if export.TalkCount != 2 || len(export.Candidates) != 2 || len(export.Conflicts) != 1 {
		t.Errorf("export = %+v", export)
	}
}

func TestWriteMarkdown(t *testing.T) {
	pinTime(t)

	path := filepath.Join(t.TempDir(), "schedule.md")
	if err := WriteMarkdown(path, []types.RankedCandidate{candidate("a", "", "", 0.5)}, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Conference Schedule") {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}
