package treeview

import (
	"strings"
	"testing"

	"spellmap/pkg/drawio"
	"spellmap/pkg/imagemap"
)

func mustParse(t *testing.T, xml string) *drawio.Document {
	t.Helper()
	doc, err := drawio.Parse([]byte(xml))
	if err != nil {
		t.Fatalf("drawio.Parse() error = %v", err)
	}
	return doc
}

func TestToDOT_Basic(t *testing.T) {
	doc := mustParse(t, `<root>
		<mxCell id="0" />
		<mxCell id="f" value="Fireball" parent="0">
			<mxGeometry x="5" y="5" width="20" height="20" as="geometry" />
		</mxCell>
	</root>`)

	dot := ToDOT(doc, Options{})

	if !strings.Contains(dot, "digraph spelltree") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"f" [label="Fireball"]`) {
		t.Errorf("ToDOT() output missing Fireball node:\n%s", dot)
	}
	if !strings.Contains(dot, `"0" -> "f"`) {
		t.Error("ToDOT() output missing containment edge")
	}
}

func TestToDOT_FilteredCell(t *testing.T) {
	doc := mustParse(t, `<root>
		<mxCell id="legend" value="Legend">
			<mxGeometry x="0" y="0" width="10" height="10" as="geometry" />
		</mxCell>
	</root>`)

	dot := ToDOT(doc, Options{})

	if !strings.Contains(dot, "dashed") {
		t.Error("ToDOT() filtered cell missing dashed style")
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() filtered cell missing lightgrey fill")
	}
}

func TestToDOT_StructuralCell(t *testing.T) {
	doc := mustParse(t, `<root><mxCell id="1" /></root>`)

	dot := ToDOT(doc, Options{})

	if !strings.Contains(dot, "shape=circle") {
		t.Error("ToDOT() structural cell missing circle shape")
	}
	if !strings.Contains(dot, `label="1"`) {
		t.Error("ToDOT() structural cell should be labeled with its ID")
	}
}

func TestToDOT_UnknownParentSkipsEdge(t *testing.T) {
	doc := mustParse(t, `<root>
		<mxCell id="f" value="Fireball" parent="ghost">
			<mxGeometry x="0" y="0" width="10" height="10" as="geometry" />
		</mxCell>
	</root>`)

	dot := ToDOT(doc, Options{})

	if strings.Contains(dot, "->") {
		t.Errorf("ToDOT() should not emit edges to unknown parents:\n%s", dot)
	}
}

func TestToDOT_CustomFilter(t *testing.T) {
	f, err := imagemap.NewFilter([]string{`^Fireball$`})
	if err != nil {
		t.Fatalf("NewFilter() error = %v", err)
	}

	doc := mustParse(t, `<root>
		<mxCell id="f" value="Fireball">
			<mxGeometry x="0" y="0" width="10" height="10" as="geometry" />
		</mxCell>
		<mxCell id="l" value="Legend">
			<mxGeometry x="10" y="0" width="10" height="10" as="geometry" />
		</mxCell>
	</root>`)

	dot := ToDOT(doc, Options{Filter: f})

	// With the custom filter, Fireball is dashed and Legend is not
	lines := strings.Split(dot, "\n")
	for _, line := range lines {
		if strings.Contains(line, `"f" `) && !strings.Contains(line, "dashed") {
			t.Error("ToDOT() Fireball should be dashed under custom filter")
		}
		if strings.Contains(line, `"l" `) && strings.Contains(line, "dashed") {
			t.Error("ToDOT() Legend should not be dashed under custom filter")
		}
	}
}

func TestFmtLabel_Simple(t *testing.T) {
	c := &drawio.Cell{ID: "f", Geometry: &drawio.Geometry{X: 5, Y: 6, Width: 20, Height: 10}}
	label := fmtLabel(c, "Fireball", "", false)

	if label != "Fireball" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", label, "Fireball")
	}
}

func TestFmtLabel_Detailed(t *testing.T) {
	c := &drawio.Cell{ID: "f", Geometry: &drawio.Geometry{X: 5, Y: 6, Width: 20, Height: 10}}
	label := fmtLabel(c, "Legend", `^Legend$`, true)

	if !strings.HasPrefix(label, "Legend\n") {
		t.Errorf("fmtLabel() detailed should start with label: %q", label)
	}
	if !strings.Contains(label, "at 5,6 size 20x10") {
		t.Errorf("fmtLabel() detailed missing geometry: %q", label)
	}
	if !strings.Contains(label, "excluded: ^Legend$") {
		t.Errorf("fmtLabel() detailed missing exclusion pattern: %q", label)
	}
}

func TestFmtLabel_DetailedNoGeometry(t *testing.T) {
	c := &drawio.Cell{ID: "x"}
	label := fmtLabel(c, "Floating", "", true)

	if label != "Floating" {
		t.Errorf("fmtLabel() = %q, want %q when nothing to add", label, "Floating")
	}
}

func TestFmtAttrs_Kept(t *testing.T) {
	c := &drawio.Cell{ID: "f"}
	attrs := fmtAttrs(c, "Fireball", "Fireball", false)

	if len(attrs) != 1 {
		t.Errorf("fmtAttrs() kept cell should have 1 attr, got %d: %v", len(attrs), attrs)
	}
	if !strings.Contains(attrs[0], "label=") {
		t.Errorf("fmtAttrs() kept cell missing label attr: %v", attrs)
	}
}

func TestFmtAttrs_Filtered(t *testing.T) {
	c := &drawio.Cell{ID: "l"}
	attrs := fmtAttrs(c, "Legend", "Legend", true)

	if len(attrs) != 4 {
		t.Errorf("fmtAttrs() filtered cell should have 4 attrs, got %d: %v", len(attrs), attrs)
	}

	joined := strings.Join(attrs, " ")
	if !strings.Contains(joined, "dashed") {
		t.Error("fmtAttrs() filtered cell missing dashed style")
	}
	if !strings.Contains(joined, "lightgrey") {
		t.Error("fmtAttrs() filtered cell missing lightgrey fill")
	}
}
