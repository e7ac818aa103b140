package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spellmap/pkg/drawio"
	"spellmap/pkg/errors"
	"spellmap/pkg/imagemap"
)

func parseDiagram(t *testing.T) *drawio.Document {
	t.Helper()
	doc, err := drawio.Parse([]byte(testDiagram))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestBuildReport(t *testing.T) {
	doc := parseDiagram(t)
	rep := buildReport("tree.drawio", doc, imagemap.DefaultFilter())

	if rep.File != "tree.drawio" {
		t.Errorf("File = %q, want %q", rep.File, "tree.drawio")
	}
	if rep.Cells != 5 {
		t.Errorf("Cells = %d, want 5", rep.Cells)
	}

	if len(rep.Kept) != 1 {
		t.Fatalf("len(Kept) = %d, want 1", len(rep.Kept))
	}
	kept := rep.Kept[0]
	if kept.Label != "Fireball" || kept.Target != "Fireball" {
		t.Errorf("Kept[0] = %+v, want Fireball", kept)
	}
	if kept.X1 != 20 || kept.Y1 != 40 || kept.X2 != 140 || kept.Y2 != 60 {
		t.Errorf("Kept[0] coords = (%d,%d)-(%d,%d), want (20,40)-(140,60)",
			kept.X1, kept.Y1, kept.X2, kept.Y2)
	}

	if len(rep.Filtered) != 1 {
		t.Fatalf("len(Filtered) = %d, want 1", len(rep.Filtered))
	}
	if rep.Filtered[0].Label != "Legend" || rep.Filtered[0].Pattern != "^Legend$" {
		t.Errorf("Filtered[0] = %+v, want Legend matched by ^Legend$", rep.Filtered[0])
	}

	if len(rep.Unplaced) != 1 || rep.Unplaced[0] != "Unbound Note" {
		t.Errorf("Unplaced = %v, want [Unbound Note]", rep.Unplaced)
	}
}

func TestReportJSON(t *testing.T) {
	doc := parseDiagram(t)
	rep := buildReport("tree.drawio", doc, imagemap.DefaultFilter())

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}
	got := string(data)

	for _, want := range []string{
		`"file": "tree.drawio"`,
		`"cells": 5`,
		`"label": "Fireball"`,
		`"pattern": "^Legend$"`,
		`"Unbound Note"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report JSON missing %s, got:\n%s", want, got)
		}
	}
}

func TestRunInspectJSONFile(t *testing.T) {
	c := newTestCLI()
	diagram := writeDiagram(t)
	output := filepath.Join(filepath.Dir(diagram), "report.json")

	opts := inspectOpts{format: inspectJSON, output: output}
	if err := c.runInspect(context.Background(), diagram, opts); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var rep inspectReport
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if rep.Cells != 5 {
		t.Errorf("Cells = %d, want 5", rep.Cells)
	}
	if len(rep.Kept) != 1 || rep.Kept[0].Target != "Fireball" {
		t.Errorf("Kept = %+v, want one Fireball entry", rep.Kept)
	}
}

func TestRunInspectDOT(t *testing.T) {
	c := newTestCLI()
	diagram := writeDiagram(t)
	output := filepath.Join(filepath.Dir(diagram), "tree.dot")

	opts := inspectOpts{format: inspectDOT, output: output}
	if err := c.runInspect(context.Background(), diagram, opts); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read DOT: %v", err)
	}
	got := string(data)

	if !strings.Contains(got, "digraph spelltree") {
		t.Errorf("DOT output missing graph header, got:\n%s", got)
	}
	if !strings.Contains(got, `"fire"`) {
		t.Errorf("DOT output missing fire node, got:\n%s", got)
	}
}

func TestRunInspectUnknownFormat(t *testing.T) {
	c := newTestCLI()
	diagram := writeDiagram(t)

	err := c.runInspect(context.Background(), diagram, inspectOpts{format: "yaml"})
	if err == nil {
		t.Fatal("runInspect() with unknown format should return an error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRunInspectMissingFile(t *testing.T) {
	c := newTestCLI()

	path := filepath.Join(t.TempDir(), "absent.drawio")
	err := c.runInspect(context.Background(), path, inspectOpts{format: inspectText})
	if err == nil {
		t.Fatal("runInspect() with missing file should return an error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestReviewEntries(t *testing.T) {
	doc := parseDiagram(t)
	entries := reviewEntries(doc, imagemap.DefaultFilter())

	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	legend := entries[0]
	if legend.label != "Legend" || legend.kept() {
		t.Errorf("entries[0] = %+v, want filtered Legend", legend)
	}
	if legend.reason() != "^Legend$" {
		t.Errorf("entries[0].reason() = %q, want %q", legend.reason(), "^Legend$")
	}

	fire := entries[1]
	if fire.label != "Fireball" || !fire.kept() {
		t.Errorf("entries[1] = %+v, want kept Fireball", fire)
	}
	if fire.target != "Fireball" {
		t.Errorf("entries[1].target = %q, want %q", fire.target, "Fireball")
	}
	if fire.x1 != 20 || fire.y1 != 40 || fire.x2 != 140 || fire.y2 != 60 {
		t.Errorf("entries[1] coords = (%d,%d)-(%d,%d), want (20,40)-(140,60)",
			fire.x1, fire.y1, fire.x2, fire.y2)
	}
	if fire.reason() != "" {
		t.Errorf("entries[1].reason() = %q, want empty", fire.reason())
	}

	note := entries[2]
	if note.label != "Unbound Note" || note.kept() {
		t.Errorf("entries[2] = %+v, want unplaced note", note)
	}
	if note.reason() != "no geometry" {
		t.Errorf("entries[2].reason() = %q, want %q", note.reason(), "no geometry")
	}
}
