package imagemap

import (
	"strings"
	"unicode"

	"spellmap/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Output formats.
const (
	FormatHTML = "html"
	FormatWiki = "wiki"
)

// MapName is the anchor shared by the usemap reference on the <img> tag and
// the <map> element in HTML output.
const MapName = "flowchart_map"

// DefaultBaseURL prefixes link targets in HTML output.
const DefaultBaseURL = "https://elanthipedia.play.net/"

// Formats lists the supported output formats.
func Formats() []string { return []string{FormatHTML, FormatWiki} }

// ParseFormat validates a format name.
func ParseFormat(name string) (string, error) {
	switch name {
	case FormatHTML, FormatWiki:
		return name, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (expected html or wiki)", name)
}

// =============================================================================
// Area - Clickable Rectangle
// =============================================================================

// Area is one clickable rectangle of the image map.
//
// Coordinates are integer pixels relative to the top-left of the exported
// image, truncated toward zero from the diagram's float geometry. (X2, Y2)
// is the bottom-right corner.
type Area struct {
	Label  string // Cleaned display label
	X1, Y1 int
	X2, Y2 int
	Target string // Link target: the label with whitespace replaced by underscores
}

// Slug converts a label into a link target by replacing every whitespace
// character, Unicode spaces included, with an underscore. Runs of whitespace
// are not collapsed.
func Slug(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, label)
}

// Render dispatches to the renderer for the given format.
func Render(format, image string, areas []Area, baseURL string) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	if f == FormatHTML {
		return RenderHTML(image, areas, baseURL), nil
	}
	return RenderWiki(image, areas), nil
}
