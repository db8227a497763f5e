package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	var buf bytes.Buffer
	Table(&buf, []string{"ID", "TEXT"}, [][]string{{"1", "Start"}, {"12", "Ship it"}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "  ID  TEXT" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[3] != "  12  Ship it" {
		t.Errorf("unexpected row %q", lines[3])
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"ID"}, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty table, got %q", buf.String())
	}
}

func TestPathLine(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	if got := PathLine([]string{"A", "B", "C"}); got != "A > B > C" {
		t.Errorf("unexpected path line %q", got)
	}
}

func TestStatusIcon(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	if StatusIcon(true) != "\u2713" || StatusIcon(false) != "\u2717" {
		t.Error("unexpected status icons")
	}
}
