package activity

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/msalah0e/pathseek/internal/graph"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	j := New(filepath.Join(t.TempDir(), "activity.jsonl"))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	j.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return j
}

func TestLogAndRead(t *testing.T) {
	j := newTestJournal(t)
	j.Log("export", "graph.json")
	j.Log("import", "steps.yaml")

	entries, err := j.Read(0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != "import" {
		t.Errorf("expected newest first, got %q", entries[0].Action)
	}

	entries, _ = j.Read(1)
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}

func TestReadMissingFile(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "nope.jsonl"))
	entries, err := j.Read(10)
	if err != nil || entries != nil {
		t.Errorf("expected no entries and no error, got %v %v", entries, err)
	}
}

func TestObserve(t *testing.T) {
	j := newTestJournal(t)
	g := graph.New()
	cancel := j.Observe(g, func(err error) { t.Errorf("journal write failed: %v", err) })

	a := g.AddNode(0, 0, "A")
	b := g.AddNode(100, 0, "B")
	g.Translate([]graph.NodeID{a.ID}, 5, 5, graph.Gesture)
	g.AddEdge(a.ID, b.ID)
	cancel()
	g.RemoveNode(a.ID)

	entries, _ := j.Read(0)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Action != "add-edge" || entries[0].Details != "1 -> 2" {
		t.Errorf("unexpected newest entry %+v", entries[0])
	}
	if entries[2].Action != "add-node" || entries[2].Origin != "user" || len(entries[2].Nodes) != 1 {
		t.Errorf("unexpected oldest entry %+v", entries[2])
	}
}

func TestSearch(t *testing.T) {
	j := newTestJournal(t)
	j.Log("export", "Graph.JSON")
	j.Log("import", "steps.yaml")
	j.Log("export", "graph.dot")

	results, err := j.Search("graph", 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}

	results, _ = j.Search("EXPORT", 1)
	if len(results) != 1 || results[0].Details != "graph.dot" {
		t.Errorf("unexpected results %+v", results)
	}
}

func TestClear(t *testing.T) {
	j := newTestJournal(t)
	j.Log("export", "")
	if err := j.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := j.Clear(); err != nil {
		t.Errorf("second Clear should be a no-op, got %v", err)
	}
	entries, _ := j.Read(0)
	if len(entries) != 0 {
		t.Errorf("expected empty journal, got %d", len(entries))
	}
}
