// Package treeview renders the containment structure of a draw.io diagram
// as a Graphviz graph.
//
// Every cell becomes a node: labeled cells as boxes, structural cells as
// small circles. Cells whose labels the exclusion filter drops are drawn
// dashed and grey, so a diagram author can see at a glance which boxes will
// become clickable areas and which will not. Edges follow the parent chain.
package treeview

import (
	"bytes"
	"fmt"
	"strings"

	"spellmap/pkg/drawio"
	"spellmap/pkg/imagemap"
)

// Options configures containment tree rendering.
type Options struct {
	// Filter marks which labels are excluded from the image map. Nil means
	// imagemap.DefaultFilter.
	Filter *imagemap.Filter

	// Detailed includes cell geometry and the matching exclusion pattern in
	// node labels. When false, only the cleaned label is shown.
	Detailed bool
}

// ToDOT converts a diagram's containment structure to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Filtered cells are rendered with dashed outlines and grey fill to
// distinguish them from cells that become clickable areas.
func ToDOT(doc *drawio.Document, opts Options) string {
	filter := opts.Filter
	if filter == nil {
		filter = imagemap.DefaultFilter()
	}

	var buf bytes.Buffer
	buf.WriteString("digraph spelltree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, c := range doc.Cells() {
		label := imagemap.CleanLabel(c.Value)
		pattern, filtered := "", false
		if label != "" {
			pattern, filtered = filter.Match(label)
		}
		attrs := fmtAttrs(c, fmtLabel(c, label, pattern, opts.Detailed), label, filtered)
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range doc.Cells() {
		if c.Parent == "" {
			continue
		}
		if _, ok := doc.CellByID(c.Parent); !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", c.Parent, c.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c *drawio.Cell, label, pattern string, detailed bool) string {
	if label == "" || !detailed {
		return label
	}

	var parts []string
	if g := c.Geometry; g != nil {
		parts = append(parts, fmt.Sprintf("at %.0f,%.0f size %.0fx%.0f", g.X, g.Y, g.Width, g.Height))
	}
	if pattern != "" {
		parts = append(parts, "excluded: "+pattern)
	}
	if len(parts) == 0 {
		return label
	}

	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(c *drawio.Cell, label, cleaned string, filtered bool) []string {
	if cleaned == "" {
		// Structural cell: no label to show, render as a small marker
		return []string{fmt.Sprintf("label=%q", c.ID), "shape=circle", "fillcolor=grey90", "fontsize=10"}
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if filtered {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}
