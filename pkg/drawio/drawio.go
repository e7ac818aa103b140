package drawio

// Geometry is the positioning record attached to a cell. The x/y offsets are
// relative to the origin of the cell's parent.
type Geometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Cell is a single mxCell element from a draw.io document.
type Cell struct {
	ID       string
	Parent   string    // ID of the containing cell ("" for roots)
	Value    string    // Raw label, HTML entities and markup intact
	Geometry *Geometry // nil when the cell carries no mxGeometry
}

// HasGeometry reports whether the cell carries positioning data.
func (c *Cell) HasGeometry() bool { return c.Geometry != nil }

// Document is a parsed draw.io diagram.
//
// Cells are kept in document order, matching the traversal order of the
// source XML. Lookup by ID is backed by an index built at parse time; when
// two cells share an ID, the first occurrence wins.
type Document struct {
	cells []*Cell
	byID  map[string]*Cell
}

// Cells returns all cells in document order.
func (d *Document) Cells() []*Cell { return d.cells }

// Len returns the number of cells in the document.
func (d *Document) Len() int { return len(d.cells) }

// CellByID returns the cell with the given ID, if present.
func (d *Document) CellByID(id string) (*Cell, bool) {
	c, ok := d.byID[id]
	return c, ok
}

// Origin resolves the absolute origin of a cell by summing its own geometry
// offset with the offsets of every ancestor in the parent chain. Ancestors
// without geometry contribute nothing; an empty or unknown parent ID ends
// the walk.
func (d *Document) Origin(c *Cell) (x, y float64) {
	for c != nil {
		if g := c.Geometry; g != nil {
			x += g.X
			y += g.Y
		}
		if c.Parent == "" {
			break
		}
		c = d.byID[c.Parent]
	}
	return x, y
}
