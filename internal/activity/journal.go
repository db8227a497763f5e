// Package activity keeps a JSONL journal of graph edits.
package activity

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/msalah0e/pathseek/internal/graph"
)

// Entry represents a single journal entry.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Origin    string    `json:"origin,omitempty"`
	Nodes     []int     `json:"nodes,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Journal appends entries to a JSONL file.
type Journal struct {
	path string
	now  func() time.Time
}

// DefaultPath returns ~/.config/pathseek/activity.jsonl.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pathseek", "activity.jsonl")
}

// New opens a journal at path. Nothing is created until the first write.
func New(path string) *Journal {
	return &Journal{path: path, now: time.Now}
}

// Log appends an entry.
func (j *Journal) Log(action, details string) error {
	return j.append(Entry{Timestamp: j.now(), Action: action, Details: details})
}

// Observe journals every committed change of g. In-flight drag steps and
// startup loads are skipped. The returned function stops observing.
func (j *Journal) Observe(g *graph.Graph, onError func(error)) (cancel func()) {
	return g.Subscribe(func(c graph.Change) {
		if c.Origin == graph.Gesture || c.Origin == graph.Load {
			return
		}
		e := Entry{Timestamp: j.now(), Action: c.Op.String(), Origin: c.Origin.String()}
		for _, id := range c.Nodes {
			e.Nodes = append(e.Nodes, int(id))
		}
		if c.Op == graph.OpAddEdge || c.Op == graph.OpRemoveEdge {
			e.Details = c.Edge.String()
		}
		if err := j.append(e); err != nil && onError != nil {
			onError(err)
		}
	})
}

func (j *Journal) append(entry Entry) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	data, _ := json.Marshal(entry)
	_, err = fmt.Fprintf(f, "%s\n", data)
	return err
}

// Read returns the last count entries, newest first. count <= 0 returns all.
func (j *Journal) Read(count int) ([]Entry, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if json.Unmarshal(line, &e) == nil {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Timestamp.After(entries[b].Timestamp)
	})

	if count > 0 && len(entries) > count {
		entries = entries[:count]
	}
	return entries, nil
}

// Search finds entries whose action, origin or details contain query,
// ignoring case.
func (j *Journal) Search(query string, count int) ([]Entry, error) {
	all, err := j.Read(0)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var results []Entry
	for _, e := range all {
		hay := strings.ToLower(e.Action + " " + e.Origin + " " + e.Details)
		if strings.Contains(hay, q) {
			results = append(results, e)
			if count > 0 && len(results) >= count {
				break
			}
		}
	}
	return results, nil
}

// Clear removes all journal entries.
func (j *Journal) Clear() error {
	err := os.Remove(j.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
