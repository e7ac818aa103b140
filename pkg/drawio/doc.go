// Package drawio reads draw.io (diagrams.net) documents into a flat cell
// model suitable for geometry extraction.
//
// # Overview
//
// A draw.io document is an XML tree of mxCell elements. Each cell may carry
// a label in its value attribute and an mxGeometry child whose x/y offsets
// are relative to the cell's parent. This package parses the XML with etree
// and exposes the cells in document order, plus an ID index for resolving
// parent chains.
//
// # Basic Usage
//
// Parse a file with [ParseFile] or bytes with [Parse], then walk the cells:
//
//	doc, err := drawio.ParseFile("Necromancer.drawio")
//	if err != nil {
//	    return err
//	}
//	for _, cell := range doc.Cells() {
//	    if cell.HasGeometry() {
//	        x, y := doc.Origin(cell)
//	        // absolute position of the cell on the canvas
//	    }
//	}
//
// # Compressed Exports
//
// draw.io saves diagrams compressed by default: each <diagram> page holds a
// base64-encoded raw DEFLATE stream of URL-encoded XML instead of a literal
// mxGraphModel subtree. [Parse] unpacks those payloads transparently when the
// outer document contains no mxCell elements, so both save formats load the
// same way.
//
// # Coordinate Model
//
// Cell positions nest: a cell at x=5 inside a container at x=10 sits at
// absolute x=15. [Document.Origin] resolves the absolute origin by summing
// geometry offsets along the parent chain. Missing geometry contributes
// nothing, and an unknown parent ID ends the walk. The walk does not guard
// against parent cycles; documents produced by draw.io do not contain them.
package drawio
