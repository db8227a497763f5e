package graph

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

// abc builds A(0,0) -> B(100,0) -> C(200,0).
func abc(t *testing.T) (*Graph, Node, Node, Node) {
	t.Helper()
	g := New()
	a := g.AddNode(0, 0, "A")
	b := g.AddNode(100, 0, "B")
	c := g.AddNode(200, 0, "C")
	if err := g.AddEdge(a.ID, b.ID); err != nil {
		t.Fatalf("AddEdge A->B: %v", err)
	}
	if err := g.AddEdge(b.ID, c.ID); err != nil {
		t.Fatalf("AddEdge B->C: %v", err)
	}
	return g, a, b, c
}

func TestAddNodeAssignsMonotonicIDs(t *testing.T) {
	g := New()
	a := g.AddNode(1, 2, "first")
	b := g.AddNode(3, 4, "second")

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", a.ID, b.ID)
	}
	if g.NextNodeID() != 3 {
		t.Errorf("expected next id 3, got %d", g.NextNodeID())
	}

	g.RemoveNode(b.ID)
	c := g.AddNode(0, 0, "third")
	if c.ID != 3 {
		t.Errorf("ids must not be reused, got %d", c.ID)
	}
}

func TestUpdateAndMoveIgnoreUnknownNodes(t *testing.T) {
	g := New()
	n := g.AddNode(0, 0, "A")

	var changes int
	g.Subscribe(func(Change) { changes++ })

	g.UpdateNodeText(99, "nope")
	g.MoveNode(99, 5, 5)
	if changes != 0 {
		t.Fatalf("expected no changes for unknown ids, got %d", changes)
	}

	g.UpdateNodeText(n.ID, "renamed")
	g.MoveNode(n.ID, 10, 20)
	got, _ := g.Node(n.ID)
	if got.Text != "renamed" || got.X != 10 || got.Y != 20 {
		t.Errorf("unexpected node after update: %+v", got)
	}
	if changes != 2 {
		t.Errorf("expected 2 changes, got %d", changes)
	}
}

func TestAddEdgeSelfLoop(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0, "A")

	err := g.AddEdge(a.ID, a.ID)
	if !errors.Is(err, ErrSelfLoop) {
		t.Fatalf("expected ErrSelfLoop, got %v", err)
	}
	if len(g.Edges()) != 0 {
		t.Errorf("expected no edges, got %d", len(g.Edges()))
	}
}

func TestAddEdgeDuplicate(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0, "A")
	b := g.AddNode(100, 0, "B")
	g.AddEdge(a.ID, b.ID)

	if err := g.AddEdge(a.ID, b.ID); !errors.Is(err, ErrDuplicateEdge) {
		t.Fatalf("expected ErrDuplicateEdge, got %v", err)
	}
	if len(g.Edges()) != 1 {
		t.Errorf("expected 1 edge, got %d", len(g.Edges()))
	}
}

func TestAddEdgeUnknownNode(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0, "A")

	if err := g.AddEdge(a.ID, 42); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
}

func TestAddEdgeTwoCycle(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0, "A")
	b := g.AddNode(100, 0, "B")

	if err := g.AddEdge(a.ID, b.ID); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge(b.ID, a.ID); !errors.Is(err, ErrWouldCreateCycle) {
		t.Fatalf("expected ErrWouldCreateCycle, got %v", err)
	}

	want := []Edge{{Source: a.ID, Target: b.ID}}
	if !reflect.DeepEqual(g.Edges(), want) {
		t.Errorf("expected only A->B, got %v", g.Edges())
	}
}

func TestRejectedEdgeEmitsNothing(t *testing.T) {
	g, a, _, c := abc(t)
	var changes int
	g.Subscribe(func(Change) { changes++ })

	g.AddEdge(c.ID, a.ID)
	if changes != 0 {
		t.Errorf("rejected edge must not notify, got %d changes", changes)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g, a, b, c := abc(t)
	g.AddEdge(a.ID, c.ID)

	g.RemoveNode(b.ID)
	for _, e := range g.Edges() {
		if e.Source == b.ID || e.Target == b.ID {
			t.Fatalf("orphan edge left behind: %v", e)
		}
	}
	if len(g.Edges()) != 1 {
		t.Errorf("expected A->C to survive, got %v", g.Edges())
	}
}

func TestRemoveNodesBatchIsOneChange(t *testing.T) {
	g, a, b, c := abc(t)
	var got []Change
	g.Subscribe(func(ch Change) { got = append(got, ch) })

	if n := g.RemoveNodes(a.ID, c.ID, 77); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if len(got) != 1 || got[0].Op != OpRemoveNodes {
		t.Fatalf("expected one remove change, got %v", got)
	}
	if g.Len() != 1 || !g.Has(b.ID) {
		t.Errorf("expected only B to remain")
	}
}

func TestRemoveEdge(t *testing.T) {
	g, a, b, _ := abc(t)

	if !g.RemoveEdge(a.ID, b.ID) {
		t.Fatal("expected A->B to be removed")
	}
	if g.RemoveEdge(a.ID, b.ID) {
		t.Error("second remove should be a no-op")
	}
	if g.HasEdge(a.ID, b.ID) {
		t.Error("edge still present")
	}
}

func TestTranslateMovesGroupRigidly(t *testing.T) {
	g, a, b, _ := abc(t)
	var origins []Origin
	g.Subscribe(func(ch Change) { origins = append(origins, ch.Origin) })

	g.Translate([]NodeID{a.ID, b.ID, b.ID}, 10, -5, Gesture)
	g.Settle()

	na, _ := g.Node(a.ID)
	nb, _ := g.Node(b.ID)
	if na.X != 10 || na.Y != -5 || nb.X != 110 || nb.Y != -5 {
		t.Errorf("unexpected positions A=%+v B=%+v", na, nb)
	}
	if !reflect.DeepEqual(origins, []Origin{Gesture, UserEdit}) {
		t.Errorf("unexpected origins %v", origins)
	}
}

func TestSubscribeCancel(t *testing.T) {
	g := New()
	var n int
	cancel := g.Subscribe(func(Change) { n++ })
	g.AddNode(0, 0, "A")
	cancel()
	g.AddNode(0, 0, "B")
	if n != 1 {
		t.Errorf("expected 1 notification, got %d", n)
	}
}

func TestWouldCreateCycle(t *testing.T) {
	cases := []struct {
		name   string
		edges  []Edge
		source NodeID
		target NodeID
		want   bool
	}{
		{"empty", []Edge{{1, 2}}, 1, 2, false},
		{"tree", []Edge{{1, 2}, {1, 3}, {3, 4}, {2, 5}}, 2, 5, false},
		{"two", []Edge{{1, 2}, {2, 1}}, 2, 1, true},
		{"long", []Edge{{1, 2}, {2, 3}, {3, 4}, {4, 1}}, 4, 1, true},
		{"diamond", []Edge{{1, 2}, {1, 3}, {2, 4}, {3, 4}}, 3, 4, false},
	}
	for _, tc := range cases {
		if got := WouldCreateCycle(tc.edges, tc.source, tc.target); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestAcyclic(t *testing.T) {
	if !Acyclic(nil) {
		t.Error("empty edge set is acyclic")
	}
	if !Acyclic([]Edge{{1, 2}, {2, 3}, {1, 3}}) {
		t.Error("expected acyclic")
	}
	if Acyclic([]Edge{{1, 2}, {2, 3}, {3, 1}}) {
		t.Error("expected cycle to be found")
	}
}

func TestFindPathShortest(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0, "A")
	b := g.AddNode(0, 0, "B")
	c := g.AddNode(0, 0, "C")
	d := g.AddNode(0, 0, "D")
	e := g.AddNode(0, 0, "E")
	g.AddEdge(a.ID, b.ID)
	g.AddEdge(b.ID, c.ID)
	g.AddEdge(c.ID, d.ID)
	g.AddEdge(a.ID, e.ID)
	g.AddEdge(e.ID, d.ID)

	want := []NodeID{a.ID, e.ID, d.ID}
	for i := 0; i < 3; i++ {
		if got := g.FindPath(a.ID, d.ID); !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestFindPathTieBreakFollowsEdgeOrder(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0, "A")
	b := g.AddNode(0, 0, "B")
	c := g.AddNode(0, 0, "C")
	d := g.AddNode(0, 0, "D")
	g.AddEdge(a.ID, c.ID)
	g.AddEdge(a.ID, b.ID)
	g.AddEdge(b.ID, d.ID)
	g.AddEdge(c.ID, d.ID)

	want := []NodeID{a.ID, c.ID, d.ID}
	if got := g.FindPath(a.ID, d.ID); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindPathSelfAndUnreachable(t *testing.T) {
	g, a, _, c := abc(t)

	if got := g.FindPath(a.ID, a.ID); !reflect.DeepEqual(got, []NodeID{a.ID}) {
		t.Errorf("expected [A], got %v", got)
	}
	if got := g.FindPath(c.ID, a.ID); len(got) != 0 {
		t.Errorf("expected no path, got %v", got)
	}
	if got := g.FindPath(99, a.ID); len(got) != 0 {
		t.Errorf("expected no path from a missing step, got %v", got)
	}
}

func TestPathTo(t *testing.T) {
	g, a, b, c := abc(t)
	island := g.AddNode(500, 500, "island")

	got, err := g.PathTo(c.ID)
	if err != nil {
		t.Fatalf("PathTo: %v", err)
	}
	if !reflect.DeepEqual(got, []NodeID{a.ID, b.ID, c.ID}) {
		t.Errorf("unexpected path %v", got)
	}
	if desc := g.Describe(got); desc != "A > B > C" {
		t.Errorf("unexpected description %q", desc)
	}

	if p, err := g.PathTo(island.ID); err != nil || len(p) != 1 {
		t.Errorf("a root reaches itself, got %v %v", p, err)
	}
}

func TestPathToUnknownTarget(t *testing.T) {
	g := New()
	if _, err := g.PathTo(1); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
}

func TestDescribeUnknownStep(t *testing.T) {
	g, a, _, _ := abc(t)
	if got := g.Describe([]NodeID{a.ID, 404}); got != "A > Unknown (404)" {
		t.Errorf("unexpected description %q", got)
	}
}

func TestErrNoRootsWrapsPathNotFound(t *testing.T) {
	if !errors.Is(ErrNoRoots, ErrPathNotFound) {
		t.Error("ErrNoRoots should wrap ErrPathNotFound")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	g, a, _, c := abc(t)
	g.AddEdge(a.ID, c.ID)
	g.RemoveNode(g.AddNode(9, 9, "gone").ID)

	data, err := g.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	s, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	h := New()
	h.Replace(s, Load)
	if !reflect.DeepEqual(h.Nodes(), g.Nodes()) {
		t.Errorf("nodes differ: %v vs %v", h.Nodes(), g.Nodes())
	}
	if !reflect.DeepEqual(h.Edges(), g.Edges()) {
		t.Errorf("edges differ: %v vs %v", h.Edges(), g.Edges())
	}
	if h.NextNodeID() != g.NextNodeID() || h.NextNodeID() != 5 {
		t.Errorf("next id differs: %d vs %d", h.NextNodeID(), g.NextNodeID())
	}

	again, _ := h.Serialize()
	if string(again) != string(data) {
		t.Error("serialization should be deterministic")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	g, _, _, _ := abc(t)
	data, err := g.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	s, err := DecodeYAML(data)
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if !reflect.DeepEqual(s.Nodes(), g.Nodes()) || !reflect.DeepEqual(s.Edges(), g.Edges()) {
		t.Error("YAML round trip changed the graph")
	}
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":     `{"nodes":`,
		"no nodes":     `{"edges":[]}`,
		"no edges":     `{"nodes":{}}`,
		"bad key":      `{"nodes":{"2":{"id":1,"x":0,"y":0,"text":"A"}},"edges":[]}`,
		"zero id":      `{"nodes":{"0":{"id":0,"x":0,"y":0,"text":"A"}},"edges":[]}`,
		"dangling":     `{"nodes":{"1":{"id":1,"x":0,"y":0,"text":"A"}},"edges":[{"source":1,"target":2}]}`,
		"self loop":    `{"nodes":{"1":{"id":1,"x":0,"y":0,"text":"A"}},"edges":[{"source":1,"target":1}]}`,
		"duplicate":    `{"nodes":{"1":{"id":1,"x":0,"y":0,"text":"A"},"2":{"id":2,"x":0,"y":0,"text":"B"}},"edges":[{"source":1,"target":2},{"source":1,"target":2}]}`,
		"cycle":        `{"nodes":{"1":{"id":1,"x":0,"y":0,"text":"A"},"2":{"id":2,"x":0,"y":0,"text":"B"}},"edges":[{"source":1,"target":2},{"source":2,"target":1}]}`,
		"null node":    `{"nodes":{"1":null},"edges":[]}`,
		"wrong shapes": `{"nodes":[],"edges":{}}`,
	}
	for name, doc := range cases {
		if _, err := Decode([]byte(doc)); !errors.Is(err, ErrParse) {
			t.Errorf("%s: expected ErrParse, got %v", name, err)
		}
	}
}

func TestDecodeRepairsStaleCounter(t *testing.T) {
	s, err := Decode([]byte(`{"nodes":{"4":{"id":4,"x":0,"y":0,"text":"A"}},"edges":[],"nextNodeId":2}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.NextNodeID() != 5 {
		t.Errorf("expected repaired counter 5, got %d", s.NextNodeID())
	}

	s, _ = Decode([]byte(`{"nodes":{},"edges":[],"nextNodeId":12}`))
	if s.NextNodeID() != 12 {
		t.Errorf("expected counter 12 to be kept, got %d", s.NextNodeID())
	}
}

func TestFailedImportLeavesGraphUntouched(t *testing.T) {
	g, _, _, _ := abc(t)
	before, _ := g.Serialize()

	if _, err := Decode([]byte("garbage")); err == nil {
		t.Fatal("expected error")
	}
	after, _ := g.Serialize()
	if string(before) != string(after) {
		t.Error("graph changed after failed decode")
	}
}

func TestEndToEndScenario(t *testing.T) {
	g, a, b, c := abc(t)

	if got := g.FindPath(a.ID, c.ID); !reflect.DeepEqual(got, []NodeID{a.ID, b.ID, c.ID}) {
		t.Fatalf("expected [A B C], got %v", got)
	}
	if err := g.AddEdge(c.ID, a.ID); !errors.Is(err, ErrWouldCreateCycle) {
		t.Fatalf("expected ErrWouldCreateCycle, got %v", err)
	}
	g.RemoveNode(b.ID)

	var texts []string
	for _, n := range g.Nodes() {
		texts = append(texts, n.Text)
	}
	if strings.Join(texts, ",") != "A,C" {
		t.Errorf("expected nodes A,C, got %v", texts)
	}
	if len(g.Edges()) != 0 {
		t.Errorf("expected no edges, got %v", g.Edges())
	}
}

func TestExportDOT(t *testing.T) {
	g, _, _, _ := abc(t)
	dot := g.ExportDOT()

	for _, want := range []string{"digraph pathseek", `n1 [label="A"]`, "n1 -> n2;", "n2 -> n3;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestBounds(t *testing.T) {
	g := New()
	if _, _, _, _, ok := g.Bounds(); ok {
		t.Error("empty graph has no bounds")
	}
	g.AddNode(-10, 5, "A")
	g.AddNode(30, -20, "B")
	minX, minY, maxX, maxY, ok := g.Bounds()
	if !ok || minX != -10 || minY != -20 || maxX != 30 || maxY != 5 {
		t.Errorf("unexpected bounds %v %v %v %v", minX, minY, maxX, maxY)
	}
}

func TestHistoryReplayKeepsIssuedIDs(t *testing.T) {
	g := New()
	g.AddNode(0, 0, "A")
	before, err := g.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	g.AddNode(10, 0, "B")

	s, err := Decode(before)
	if err != nil {
		t.Fatal(err)
	}
	g.Replace(s, HistoryReplay)
	after, _ := g.Serialize()
	if string(after) != string(before) {
		t.Fatalf("replay should restore the snapshot exactly:\nwant %s\ngot  %s", before, after)
	}
	if g.NextNodeID() != 2 {
		t.Errorf("expected restored counter 2, got %d", g.NextNodeID())
	}
	if n := g.AddNode(0, 0, "C"); n.ID != 3 {
		t.Errorf("expected a fresh id 3 after replay, got %d", n.ID)
	}

	s, _ = Decode(before)
	g.Replace(s, Import)
	if g.NextNodeID() != 2 {
		t.Errorf("expected import to take the document counter 2, got %d", g.NextNodeID())
	}
}

func TestRandomEditsStayAcyclic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := New()
	var snapshots [][]byte

	pick := func() NodeID {
		nodes := g.Nodes()
		if len(nodes) == 0 {
			return 0
		}
		return nodes[rng.Intn(len(nodes))].ID
	}

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(10); {
		case op < 3:
			before := g.Len()
			n := g.AddNode(rng.Float64()*1000, rng.Float64()*1000, "S")
			if g.Len() != before+1 {
				t.Fatalf("step %d: id %d replaced a live step", step, n.ID)
			}
		case op < 7:
			g.AddEdge(pick(), pick())
		case op < 8:
			g.RemoveNode(pick())
		case op < 9:
			blob, err := g.Serialize()
			if err != nil {
				t.Fatal(err)
			}
			snapshots = append(snapshots, blob)
		default:
			if len(snapshots) == 0 {
				continue
			}
			s, err := Decode(snapshots[rng.Intn(len(snapshots))])
			if err != nil {
				t.Fatalf("step %d: snapshot no longer decodes: %v", step, err)
			}
			g.Replace(s, HistoryReplay)
		}

		edges := g.Edges()
		if !Acyclic(edges) {
			t.Fatalf("step %d: graph has a cycle: %v", step, edges)
		}
		var maxID NodeID
		for _, n := range g.Nodes() {
			if n.ID > maxID {
				maxID = n.ID
			}
		}
		if g.NextNodeID() <= maxID {
			t.Fatalf("step %d: next id %d not above %d", step, g.NextNodeID(), maxID)
		}
		for _, e := range edges {
			if !g.Has(e.Source) || !g.Has(e.Target) {
				t.Fatalf("step %d: dangling edge %v", step, e)
			}
		}
	}
}
