package debug

import (
	"bytes"
	"testing"
)

func TestDumpGraphWritesOutput(t *testing.T) {
	type node struct {
		Name     string
		Children []*node
	}
	root := &node{Name: "bank0", Children: []*node{{Name: "cia1"}, {Name: "cia2"}}}

	var buf bytes.Buffer
	DumpGraph(&buf, root)

	if buf.Len() == 0 {
		t.Fatalf("expected DumpGraph to write dot output")
	}
}
