package imagemap

import (
	"bytes"
	"fmt"
)

// RenderHTML renders areas as an HTML fragment: an <img> tag bound to a
// named <map> element. Link targets resolve against baseURL; an empty
// baseURL falls back to DefaultBaseURL. Labels and targets are interpolated
// without re-escaping, so the markup round-trips exactly what the diagram
// carried.
func RenderHTML(image string, areas []Area, baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<img src=\"%s\" usemap=\"#%s\">\n", image, MapName)
	fmt.Fprintf(&buf, "<map name=\"%s\">\n", MapName)
	for _, a := range areas {
		fmt.Fprintf(&buf, "  <area shape=\"rect\" coords=\"%d,%d,%d,%d\" href=\"%s%s\" title=\"%s\">\n",
			a.X1, a.Y1, a.X2, a.Y2, baseURL, a.Target, a.Label)
	}
	buf.WriteString("</map>")
	return buf.String()
}
