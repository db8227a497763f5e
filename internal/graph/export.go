package graph

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExportJSON returns the graph as pretty-printed JSON.
func (g *Graph) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(g.document(), "", "  ")
}

// ExportYAML returns the graph document as YAML.
func (g *Graph) ExportYAML() ([]byte, error) {
	return yaml.Marshal(g.document())
}

// ExportDOT returns the graph in Graphviz DOT format.
func (g *Graph) ExportDOT() string {
	var b strings.Builder
	b.WriteString("digraph pathseek {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, id := range g.order {
		n := g.nodes[id]
		b.WriteString(fmt.Sprintf("  n%d [label=%q];\n", n.ID, n.Text))
	}

	b.WriteString("\n")
	for _, e := range g.edges {
		b.WriteString(fmt.Sprintf("  n%d -> n%d;\n", e.Source, e.Target))
	}

	b.WriteString("}\n")
	return b.String()
}
