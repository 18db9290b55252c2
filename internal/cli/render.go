package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treechart/pkg/errors"
	"github.com/matzehuels/treechart/pkg/pipeline"
)

// renderCommand creates the render command for writing chart artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		title      string
		noLegend   bool
		scale      float64
		chart      chartFlags
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a dataset to SVG, PNG, JSON or DOT",
		Long: `Render a dataset to one or more chart files.

The dataset is a .json, .yaml or .toml file, or sample:<name> for a bundled
sample. Each format is written next to the output base path, e.g.
chart.svg and chart.png for -o chart -f svg,png.

Formats:
  svg           the chart with title, legend and wrapped text
  png           a raster of the chart shapes (text is not rasterized)
  json          the computed layout
  dot           a Graphviz description of the tree
  nodelink.svg  the tree drawn by Graphviz
  nodelink.png  the tree drawn by Graphviz, as PNG`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			chart.apply(cmd, &opts)
			if cmd.Flags().Changed("format") {
				opts.Render.Formats = parseFormats(formatsStr)
			}
			if cmd.Flags().Changed("title") {
				opts.Render.Title = title
			}
			if cmd.Flags().Changed("no-legend") {
				opts.Render.Legend = !noLegend
			}
			if cmd.Flags().Changed("scale") {
				opts.Render.PNGScale = scale
			}
			return c.runRender(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base path (default: dataset name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", pipeline.FormatSVG, "output format(s), comma-separated")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	cmd.Flags().BoolVar(&noLegend, "no-legend", false, "omit the status legend")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultPNGScale, "PNG scale factor")
	chart.register(cmd)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	if output != "" {
		if err := errors.ValidateOutputPath(output); err != nil {
			return err
		}
	}
	opts.Dataset = input
	prog := newProgress(c.Logger)

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}

	base := basePath(output, input)
	var paths []string
	for _, format := range opts.Render.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		c.Logger.Debugf("Wrote %s: %d bytes", path, len(data))
		paths = append(paths, path)
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))

	p := c.printer()
	p.success("Rendered %s (%s)", result.Diagram.Root.Label, result.Diagram.Root.Percent())
	for _, path := range paths {
		p.file(path)
	}
	p.stats(result.Layout.Stats())
	p.newline()
	p.nextStep("Explore interactively", appName+" explore "+input)
	return nil
}
