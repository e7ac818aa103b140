package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"spellmap/pkg/drawio"
	"spellmap/pkg/errors"
	"spellmap/pkg/imagemap"
)

// genOpts holds the command-line flags for the root conversion command.
type genOpts struct {
	drawioFile string // source diagram
	imageFile  string // image filename referenced by the map
	outputFile string // destination for the generated map
	format     string // html or wiki
	xAdj       int    // shift applied to all x coordinates
	yAdj       int    // shift applied to all y coordinates
	filterFile string // optional TOML overrides for the exclusion list
}

// validate checks that all required flags are present.
func (o *genOpts) validate() error {
	required := []struct{ name, value string }{
		{"drawio_file", o.drawioFile},
		{"image_file", o.imageFile},
		{"output_file", o.outputFile},
		{"format", o.format},
	}
	for _, f := range required {
		if f.value == "" {
			return errors.New(errors.ErrCodeInvalidInput, "--%s is required", f.name)
		}
	}
	return nil
}

// generateCommand creates the root command that converts a draw.io diagram
// into a clickable image map.
func (c *CLI) generateCommand() *cobra.Command {
	var opts genOpts

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Convert draw.io spell trees into clickable image maps",
		Long: `Spellmap converts draw.io spell tree diagrams into clickable image maps.

Labeled cells in the diagram become rectangular areas linked to the wiki
page for each spell. Decorative markers, legends, and category headers are
dropped by a built-in exclusion list. Output is either an HTML <map>
element or a MediaWiki <imagemap> block.`,
		Example: `  # HTML image map
  spellmap --drawio_file tree.drawio --image_file tree.png --output_file map.html --format html

  # MediaWiki imagemap block, nudged 4px right
  spellmap --drawio_file tree.drawio --image_file tree.png --output_file map.txt --format wiki --x_adj 4`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				_ = cmd.Usage()
				return errors.New(errors.ErrCodeInvalidInput, "missing required flags")
			}
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.drawioFile, "drawio_file", "", "path to the draw.io diagram to convert")
	cmd.Flags().StringVar(&opts.imageFile, "image_file", "", "image filename the generated map refers to")
	cmd.Flags().StringVar(&opts.outputFile, "output_file", "", "file to write the image map to")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: html or wiki")
	cmd.Flags().IntVar(&opts.xAdj, "x_adj", 0, "adjustment added to all x coordinates")
	cmd.Flags().IntVar(&opts.yAdj, "y_adj", 0, "adjustment added to all y coordinates")
	cmd.Flags().StringVar(&opts.filterFile, "filter_file", "", "TOML file overriding the exclusion patterns and base URL")

	return cmd
}

// runGenerate executes the conversion: parse the diagram, extract clickable
// areas, render the map, and write it out.
func (c *CLI) runGenerate(ctx context.Context, opts genOpts) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if _, err := imagemap.ParseFormat(opts.format); err != nil {
		return err
	}

	var cfg *imagemap.Config
	if opts.filterFile != "" {
		var err error
		cfg, err = imagemap.LoadConfig(opts.filterFile)
		if err != nil {
			return err
		}
		c.Logger.Debugf("Loaded filter overrides from %s", opts.filterFile)
	}
	filter, err := cfg.Filter()
	if err != nil {
		return err
	}

	c.Logger.Infof("Parsing %s", opts.drawioFile)

	prog := newProgress(c.Logger)
	doc, err := drawio.ParseFile(opts.drawioFile)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d cells", doc.Len()))

	areas := imagemap.Extract(doc, imagemap.Options{
		XAdj:   opts.xAdj,
		YAdj:   opts.yAdj,
		Filter: filter,
	})
	c.Logger.Debugf("Extracted %d areas (x_adj=%d, y_adj=%d)", len(areas), opts.xAdj, opts.yAdj)
	if len(areas) == 0 {
		printWarning("No labeled cells survived filtering")
	}

	out, err := imagemap.Render(opts.format, opts.imageFile, areas, cfg.ResolveBaseURL())
	if err != nil {
		return err
	}
	if err := writeOutput([]byte(out), opts.outputFile); err != nil {
		return err
	}

	printSuccess("Image map generated")
	printKeyValue("Format", opts.format)
	printStats(len(areas), doc.Len())
	printFile(opts.outputFile)
	printNextStep("Preview the extraction", fmt.Sprintf("%s inspect %s -i", appName, opts.drawioFile))

	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
