package cli

import (
	"context"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"spellmap/pkg/drawio"
	"spellmap/pkg/errors"
	"spellmap/pkg/imagemap"
	"spellmap/pkg/treeview"
)

// Inspect output formats.
const (
	inspectText = "text"
	inspectJSON = "json"
	inspectDOT  = "dot"
	inspectSVG  = "svg"
	inspectPNG  = "png"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	format      string // text, json, dot, svg, or png
	output      string // output file (stdout if empty)
	filterFile  string // optional TOML overrides for the exclusion list
	detailed    bool   // annotate DOT nodes with geometry and filter details
	interactive bool   // review labels in a bubbletea list
}

// inspectCommand creates the inspect command for previewing how a diagram
// will be converted.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{format: inspectText}

	cmd := &cobra.Command{
		Use:   "inspect <diagram.drawio>",
		Short: "Preview extraction results for a diagram",
		Long: `Preview how a draw.io diagram will be converted.

Shows which labels survive the exclusion list, which are dropped and by
what pattern, and the normalized rectangle each surviving label produces.
The containment tree can also be rendered as Graphviz DOT, SVG, or PNG.`,
		Example: `  # Styled terminal report
  spellmap inspect tree.drawio

  # Machine-readable report
  spellmap inspect tree.drawio --format json -o report.json

  # Containment tree as SVG
  spellmap inspect tree.drawio --format svg -o tree.svg

  # Interactive label review
  spellmap inspect tree.drawio -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: text, json, dot, svg, or png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.filterFile, "filter_file", "", "TOML file overriding the exclusion patterns and base URL")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate tree nodes with geometry and filter details")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "review labels in an interactive list")

	return cmd
}

// runInspect parses the diagram and emits the requested report.
func (c *CLI) runInspect(ctx context.Context, file string, opts inspectOpts) error {
	switch opts.format {
	case inspectText, inspectJSON, inspectDOT, inspectSVG, inspectPNG:
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"unknown inspect format %q (expected text, json, dot, svg, or png)", opts.format)
	}

	var cfg *imagemap.Config
	if opts.filterFile != "" {
		var err error
		cfg, err = imagemap.LoadConfig(opts.filterFile)
		if err != nil {
			return err
		}
	}
	filter, err := cfg.Filter()
	if err != nil {
		return err
	}

	doc, err := drawio.ParseFile(file)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Parsed %d cells from %s", doc.Len(), file)

	if opts.interactive {
		return c.runReview(doc, filter, cfg.ResolveBaseURL())
	}

	switch opts.format {
	case inspectText:
		printReport(buildReport(file, doc, filter))
		return nil
	case inspectJSON:
		data, err := json.MarshalIndent(buildReport(file, doc, filter), "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return writeOutput(append(data, '\n'), opts.output)
	case inspectDOT:
		dot := treeview.ToDOT(doc, treeview.Options{Filter: filter, Detailed: opts.detailed})
		return writeOutput([]byte(dot), opts.output)
	default:
		return c.renderTree(ctx, doc, filter, opts)
	}
}

// renderTree renders the containment tree to SVG or PNG.
func (c *CLI) renderTree(ctx context.Context, doc *drawio.Document, filter *imagemap.Filter, opts inspectOpts) error {
	dot := treeview.ToDOT(doc, treeview.Options{Filter: filter, Detailed: opts.detailed})

	sp := newSpinner(ctx, "Rendering containment tree...")
	sp.Start()

	var data []byte
	var err error
	if opts.format == inspectPNG {
		data, err = treeview.RenderPNG(dot)
	} else {
		data, err = treeview.RenderSVG(dot)
	}
	if err != nil {
		sp.StopWithError("Rendering failed")
		return errors.Wrap(errors.ErrCodeInternal, err, "render containment tree")
	}
	sp.Stop()

	if err := writeOutput(data, opts.output); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Containment tree rendered")
		printFile(opts.output)
	}
	return nil
}

// =============================================================================
// Report
// =============================================================================

// inspectReport summarizes how a diagram would be converted.
// Unplaced lists labels that pass the filter but have no geometry to map.
type inspectReport struct {
	File     string          `json:"file"`
	Cells    int             `json:"cells"`
	Kept     []keptLabel     `json:"kept"`
	Filtered []filteredLabel `json:"filtered"`
	Unplaced []string        `json:"unplaced,omitempty"`
}

// keptLabel is a label that survives filtering, with its normalized rectangle.
type keptLabel struct {
	Label  string `json:"label"`
	Target string `json:"target"`
	X1     int    `json:"x1"`
	Y1     int    `json:"y1"`
	X2     int    `json:"x2"`
	Y2     int    `json:"y2"`
}

// filteredLabel is a label dropped by the exclusion list.
type filteredLabel struct {
	Label   string `json:"label"`
	Pattern string `json:"pattern"`
}

// buildReport collects extracted areas and filter verdicts for the document.
func buildReport(file string, doc *drawio.Document, filter *imagemap.Filter) inspectReport {
	rep := inspectReport{File: file, Cells: doc.Len()}

	for _, area := range imagemap.Extract(doc, imagemap.Options{Filter: filter}) {
		rep.Kept = append(rep.Kept, keptLabel{
			Label:  area.Label,
			Target: area.Target,
			X1:     area.X1,
			Y1:     area.Y1,
			X2:     area.X2,
			Y2:     area.Y2,
		})
	}
	for _, cell := range doc.Cells() {
		label := imagemap.CleanLabel(cell.Value)
		if label == "" {
			continue
		}
		if pattern, ok := filter.Match(label); ok {
			rep.Filtered = append(rep.Filtered, filteredLabel{Label: label, Pattern: pattern})
		} else if !cell.HasGeometry() {
			rep.Unplaced = append(rep.Unplaced, label)
		}
	}
	return rep
}

// printReport prints the styled terminal report.
func printReport(rep inspectReport) {
	printInfo("%s: %d cells, %d kept, %d filtered", rep.File, rep.Cells, len(rep.Kept), len(rep.Filtered))
	printNewline()

	for _, k := range rep.Kept {
		printSuccess("%s", k.Label)
		printDetail("(%d,%d)-(%d,%d) -> %s", k.X1, k.Y1, k.X2, k.Y2, k.Target)
	}
	for _, f := range rep.Filtered {
		printError("%s", f.Label)
		printDetail("matched %s", f.Pattern)
	}
	for _, u := range rep.Unplaced {
		printWarning("%s", u)
		printDetail("no geometry")
	}
}

// =============================================================================
// Interactive Review
// =============================================================================

// runReview launches the interactive label review and prints the selection.
func (c *CLI) runReview(doc *drawio.Document, filter *imagemap.Filter, baseURL string) error {
	entries := reviewEntries(doc, filter)
	if len(entries) == 0 {
		printWarning("No labeled cells to review")
		return nil
	}

	final, err := tea.NewProgram(newReviewModel(entries)).Run()
	if err != nil {
		return fmt.Errorf("run review: %w", err)
	}

	m, ok := final.(reviewModel)
	if !ok || m.selected == nil {
		return nil
	}

	e := m.selected
	printNewline()
	printSuccess("%s", e.label)
	printKeyValue("Target", e.target)
	printKeyValue("Link", baseURL+e.target)
	printKeyValue("Coords", fmt.Sprintf("(%d,%d)-(%d,%d)", e.x1, e.y1, e.x2, e.y2))
	return nil
}
