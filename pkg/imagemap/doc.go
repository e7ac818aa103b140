// Package imagemap turns positioned diagram cells into clickable image map
// markup.
//
// # Overview
//
// Spell trees drawn in draw.io are exported as images for the wiki; this
// package produces the matching clickable areas. Extraction runs two passes
// over a parsed diagram:
//
//  1. Find the minimum absolute x/y over every cell that carries geometry.
//     This anchors the coordinate system, because the exported image is
//     cropped to the drawn content rather than the canvas origin.
//  2. Collect one [Area] per labeled cell whose cleaned label survives the
//     exclusion filter, with coordinates shifted by the pass-1 minimum and
//     the caller's pixel adjustments.
//
// Labels are cleaned before filtering: HTML entities are decoded, then any
// markup tags are stripped. Decoding runs first, so entity-encoded markup is
// stripped as well.
//
// # Filtering
//
// Diagrams carry structural labels alongside spell names: legend boxes,
// circle markers, requirement notes. [DefaultFilter] drops those using the
// patterns in [DefaultExclude]; a TOML [Config] can replace the list for
// other diagram conventions.
//
// # Output
//
// [RenderHTML] emits an <img> tag plus <map> element; [RenderWiki] emits a
// MediaWiki <imagemap> block. Both preserve area order, which follows the
// document order of the source diagram.
package imagemap
