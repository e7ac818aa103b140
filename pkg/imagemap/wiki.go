package imagemap

import (
	"bytes"
	"fmt"
)

// RenderWiki renders areas as a MediaWiki <imagemap> block. Link targets
// are bare page names; the wiki resolves them against itself. Output ends
// with a newline, matching the block form wiki pages embed.
func RenderWiki(image string, areas []Area) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<imagemap>\nFile:%s|frameless|upright=4\n", image)
	for _, a := range areas {
		fmt.Fprintf(&buf, "rect %d %d %d %d [[%s]]\n", a.X1, a.Y1, a.X2, a.Y2, a.Target)
	}
	buf.WriteString("</imagemap>\n")
	return buf.String()
}
