// Package cli implements the treechart command-line interface.
//
// The CLI loads hierarchical checklist datasets, lays them out as
// root → category → leaf charts, and writes them as SVG, PNG, JSON or DOT.
// It is built on cobra; terminal output is styled with lipgloss and the
// explore command runs a bubbletea program.
//
// # Commands
//
//   - render: write chart artifacts for a dataset
//   - layout: write the computed geometry as JSON and print a summary
//   - explore: toggle status visibility interactively
//   - sample: write the bundled sample dataset
//   - config: show or create the TOML config file
//
// # Configuration
//
// Defaults come from pipeline.DefaultOptions, are overridden by the config
// file ($XDG_CONFIG_HOME/treechart/config.toml or --config), and finally by
// command-line flags.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treechart/pkg/buildinfo"
	"github.com/matzehuels/treechart/pkg/observability"
	"github.com/matzehuels/treechart/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "treechart"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output. Logs go to the logger's writer.
	Out io.Writer

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Treechart draws checklists as root → category → leaf charts",
		Long: `Treechart lays out a completion checklist as a three-column tree: a root
circle with the overall completion ratio, one box per requirement group, and
one box per requirement coloured by status. Statuses can be hidden to focus
the chart; the layout is recomputed for every visibility set.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := newLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetExploreHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/treechart/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// loadOptions returns pipeline options from --config, or from the default
// config file when it exists.
func (c *CLI) loadOptions() (pipeline.Options, error) {
	var (
		opts pipeline.Options
		err  error
	)
	if c.configPath != "" {
		opts, err = pipeline.LoadConfig(c.configPath)
	} else {
		opts, err = pipeline.LoadDefaultConfig()
	}
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("load config: %w", err)
	}
	opts.Logger = c.Logger
	return opts, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// chartFlags are the flags shared by every command that computes a layout.
type chartFlags struct {
	show  string
	theme string
	cells bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.show, "show", "all", "visible statuses: all, none, or a list of completed,priority,incomplete")
	cmd.Flags().StringVar(&f.theme, "theme", pipeline.DefaultTheme, "colour theme: dark, light")
	cmd.Flags().BoolVar(&f.cells, "cells", false, "measure text in display cells instead of runes")
}

// apply copies flags the user set explicitly over the config values.
func (f *chartFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if cmd.Flags().Changed("show") {
		opts.Render.Show = f.show
	}
	if cmd.Flags().Changed("theme") {
		opts.Render.Theme = f.theme
	}
	if cmd.Flags().Changed("cells") {
		opts.Text.Mode = "runes"
		if f.cells {
			opts.Text.Mode = "cells"
		}
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return formats
}

// basePath derives the output path without format extension. Without an
// explicit output it strips the extension (or sample prefix) from input.
func basePath(output, input string) string {
	if output == "" {
		name := strings.TrimPrefix(input, pipeline.SamplePrefix)
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	longest := ""
	for _, f := range pipeline.FormatNames() {
		if strings.HasSuffix(output, "."+f) && len(f) > len(longest) {
			longest = f
		}
	}
	if longest != "" {
		return strings.TrimSuffix(output, "."+longest)
	}
	return output
}
