package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treechart/pkg/errors"
	"github.com/matzehuels/treechart/pkg/io"
	"github.com/matzehuels/treechart/pkg/samples"
)

// sampleCommand creates the sample command for writing bundled datasets.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		output string
		format string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a bundled sample dataset",
		Long: `Write a bundled sample dataset to stdout or a file.

The format defaults to the output file's extension, or YAML on stdout.
Available samples: ` + strings.Join(samples.Names(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSample(name, format, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "", "dataset format: yaml, json, toml")
	cmd.Flags().StringVar(&name, "name", samples.Bronze, "sample name")

	return cmd
}

func (c *CLI) runSample(name, format, output string) error {
	d, err := samples.Load(name)
	if err != nil {
		return err
	}

	f, err := sampleFormat(format, output)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := io.Write(d, &buf, f); err != nil {
		return err
	}

	if output == "" {
		_, err := c.Out.Write(buf.Bytes())
		return err
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	p := c.printer()
	p.success("Wrote sample %s", name)
	p.file(output)
	p.newline()
	p.nextStep("Render", appName+" render "+output)
	return nil
}

// sampleFormat picks the explicit format, else the output extension, else YAML.
func sampleFormat(format, output string) (io.Format, error) {
	if format != "" {
		return io.ParseFormat(format)
	}
	if output != "" {
		return io.FormatFromPath(output)
	}
	return io.FormatYAML, nil
}
