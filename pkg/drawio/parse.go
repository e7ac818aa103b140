package drawio

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/beevik/etree"

	"spellmap/pkg/errors"
)

// ParseFile reads and parses a draw.io document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "diagram file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read diagram file %s", path)
	}
	return Parse(data)
}

// Parse parses draw.io XML from memory.
//
// Uncompressed documents keep their mxCell elements directly in the XML tree.
// Compressed exports carry each page as an encoded payload inside <diagram>;
// when the outer tree contains no mxCell, those payloads are unpacked and
// their cells collected in page order.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "parse diagram XML")
	}

	cells := doc.FindElements("//mxCell")
	if len(cells) == 0 {
		unpacked, err := unpackPages(doc)
		if err != nil {
			return nil, err
		}
		cells = unpacked
	}

	return newDocument(cells), nil
}

// newDocument converts mxCell elements into a Document, preserving document
// order and indexing cells by ID.
func newDocument(elements []*etree.Element) *Document {
	d := &Document{
		cells: make([]*Cell, 0, len(elements)),
		byID:  make(map[string]*Cell, len(elements)),
	}
	for _, el := range elements {
		c := &Cell{
			ID:     el.SelectAttrValue("id", ""),
			Parent: el.SelectAttrValue("parent", ""),
			Value:  el.SelectAttrValue("value", ""),
		}
		if geom := el.FindElement(".//mxGeometry"); geom != nil {
			c.Geometry = &Geometry{
				X:      attrFloat(geom, "x"),
				Y:      attrFloat(geom, "y"),
				Width:  attrFloat(geom, "width"),
				Height: attrFloat(geom, "height"),
			}
		}
		d.cells = append(d.cells, c)
		if _, ok := d.byID[c.ID]; !ok {
			d.byID[c.ID] = c
		}
	}
	return d
}

// attrFloat reads a float attribute, treating missing or malformed values
// as zero. Geometry attributes never make a document unreadable.
func attrFloat(el *etree.Element, key string) float64 {
	v, err := strconv.ParseFloat(el.SelectAttrValue(key, "0"), 64)
	if err != nil {
		return 0
	}
	return v
}

// unpackPages decompresses the <diagram> payloads of a compressed export and
// returns their mxCell elements in page order. Pages without text content
// are skipped.
func unpackPages(doc *etree.Document) ([]*etree.Element, error) {
	var cells []*etree.Element
	for _, page := range doc.FindElements("//diagram") {
		payload := strings.TrimSpace(page.Text())
		if payload == "" {
			continue
		}
		xml, err := inflate(payload)
		if err != nil {
			name := page.SelectAttrValue("name", "")
			return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "decompress diagram page %q", name)
		}
		inner := etree.NewDocument()
		if err := inner.ReadFromBytes(xml); err != nil {
			name := page.SelectAttrValue("name", "")
			return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "parse decompressed page %q", name)
		}
		cells = append(cells, inner.FindElements("//mxCell")...)
	}
	return cells, nil
}

// inflate decodes a single compressed page payload: base64, then a raw
// DEFLATE stream, then URL percent-decoding. The base64 alphabet contains no
// whitespace, so line wrapping inside the payload is stripped first.
func inflate(payload string) ([]byte, error) {
	payload = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)

	compressed, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}

	// draw.io percent-encodes the XML before compressing. PathUnescape keeps
	// literal '+' characters intact, matching encodeURIComponent.
	decoded, err := url.PathUnescape(string(raw))
	if err != nil {
		return nil, fmt.Errorf("percent decode: %w", err)
	}
	return []byte(decoded), nil
}
