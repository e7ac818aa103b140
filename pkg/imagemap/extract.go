package imagemap

import (
	"math"

	"spellmap/pkg/drawio"
)

// Options configure extraction.
type Options struct {
	// XAdj and YAdj shift every area by a fixed pixel offset after
	// normalization, compensating for export margins around the image.
	XAdj int
	YAdj int

	// Filter decides which labels become clickable areas. Nil means
	// DefaultFilter.
	Filter *Filter
}

// Extract collects clickable areas from a parsed diagram.
//
// Every geometry-bearing cell participates in the pass-1 minimum, including
// cells whose labels are filtered out; the exported image is cropped to all
// drawn content, not only the clickable parts. The cell at the minimum maps
// to exactly (XAdj, YAdj). Areas come back in document order.
func Extract(doc *drawio.Document, opts Options) []Area {
	filter := opts.Filter
	if filter == nil {
		filter = DefaultFilter()
	}

	minX, minY := math.Inf(1), math.Inf(1)
	for _, cell := range doc.Cells() {
		if !cell.HasGeometry() {
			continue
		}
		x, y := doc.Origin(cell)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
	}

	var areas []Area
	for _, cell := range doc.Cells() {
		label := CleanLabel(cell.Value)
		if label == "" || filter.Excludes(label) {
			continue
		}
		if !cell.HasGeometry() {
			continue
		}

		x, y := doc.Origin(cell)
		x += float64(opts.XAdj) - minX
		y += float64(opts.YAdj) - minY

		areas = append(areas, Area{
			Label:  label,
			X1:     int(x),
			Y1:     int(y),
			X2:     int(x + cell.Geometry.Width),
			Y2:     int(y + cell.Geometry.Height),
			Target: Slug(label),
		})
	}
	return areas
}
