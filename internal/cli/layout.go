package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treechart/pkg/pipeline"
	"github.com/matzehuels/treechart/pkg/render/sink"
)

// layoutCommand creates the layout command for computing chart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		chart  chartFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Compute chart geometry and write it as JSON",
		Long: `Compute chart geometry for a dataset.

The output is the same document as 'render -f json': every node's box, every
connector segment, and the chart bounds for the chosen visibility set. Use
-o - to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			chart.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <dataset>.layout.json)")
	chart.register(cmd)

	return cmd
}

// runLayout loads the dataset, computes the layout, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	theme, err := opts.Theme()
	if err != nil {
		return err
	}

	runner := c.newRunner()
	d, err := runner.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	res, err := runner.Layout(ctx, d, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(res, sink.WithJSONTheme(theme.Name), sink.WithJSONTitle(opts.Render.Title))
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := c.Out.Write(append(data, '\n'))
		return err
	}
	if output == "" {
		output = basePath("", input) + ".layout.json"
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	p := c.printer()
	p.success("Layout complete")
	p.file(output)
	p.stats(res.Stats())
	fmt.Fprintln(c.Out, categoryTable(res))
	p.keyValue("size", fmt.Sprintf("%.0f × %.0f", res.Width, res.TotalHeight))
	p.keyValue("visible", visibleLabel(opts.Render.Show))
	p.newline()
	p.nextStep("Render", appName+" render "+input+" -f svg,png")
	return nil
}

func visibleLabel(show string) string {
	if show == "" {
		return "all"
	}
	return show
}
