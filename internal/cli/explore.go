package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/layout"
	"github.com/matzehuels/treechart/pkg/observability"
	"github.com/matzehuels/treechart/pkg/pipeline"
	"github.com/matzehuels/treechart/pkg/render/styles"
)

var (
	exploreDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	exploreHiddenStyle = lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true)
	exploreGroupStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// exploreCommand creates the interactive legend command.
func (c *CLI) exploreCommand() *cobra.Command {
	var chart chartFlags

	cmd := &cobra.Command{
		Use:   "explore [dataset]",
		Short: "Toggle status visibility interactively",
		Long: `Show a dataset as a terminal tree with an interactive legend.

Keys 1, 2 and 3 toggle completed, priority and incomplete leaves; a shows
every status; q quits. The layout is recomputed on each toggle and the view
reports the resulting chart size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			chart.apply(cmd, &opts)
			return c.runExplore(cmd.Context(), args[0], opts)
		},
	}
	chart.register(cmd)

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input string, opts pipeline.Options) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	vis, err := opts.Visibility()
	if err != nil {
		return err
	}

	runner := c.newRunner()
	d, err := runner.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	quiet, restore := c.quietRunner()
	m := newExploreModel(ctx, quiet, d, opts, vis)
	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(c.Out)).Run()
	restore()
	if err != nil {
		return err
	}
	if fm, ok := final.(exploreModel); ok && fm.vis != diagram.All() {
		c.printer().nextStep("Render this view", fmt.Sprintf("%s render %s --show %s", appName, input, showFlag(fm.vis)))
	}
	return nil
}

// quietRunner returns a runner that logs nothing and mutes the registered
// hooks, so log lines cannot interleave with the terminal UI. Call restore
// once the program exits.
func (c *CLI) quietRunner() (runner *pipeline.Runner, restore func()) {
	pipelineHooks, exploreHooks := observability.Pipeline(), observability.Explore()
	observability.SetPipelineHooks(observability.NoopPipelineHooks{})
	observability.SetExploreHooks(observability.NoopExploreHooks{})
	return pipeline.NewRunner(log.New(io.Discard)), func() {
		observability.SetPipelineHooks(pipelineHooks)
		observability.SetExploreHooks(exploreHooks)
	}
}

// showFlag formats v as a --show value.
func showFlag(v diagram.Visibility) string {
	if v == diagram.None() {
		return "none"
	}
	return v.String()
}

// =============================================================================
// exploreModel - Interactive legend
// =============================================================================

// exploreModel is the bubbletea model for the explore command. Every toggle
// recomputes the layout for the new visibility set.
type exploreModel struct {
	ctx     context.Context
	runner  *pipeline.Runner
	diagram *diagram.Diagram
	opts    pipeline.Options
	counts  map[diagram.Status]int

	vis diagram.Visibility
	res layout.Result
}

func newExploreModel(ctx context.Context, runner *pipeline.Runner, d *diagram.Diagram, opts pipeline.Options, vis diagram.Visibility) exploreModel {
	m := exploreModel{
		ctx:     ctx,
		runner:  runner,
		diagram: d,
		opts:    opts,
		counts:  d.StatusCounts(),
		vis:     vis,
	}
	m.res = runner.LayoutVisible(ctx, d, vis, opts)
	return m
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "1", "2", "3":
		s := diagram.Statuses[key.String()[0]-'1']
		return m.setVisibility(m.vis.Toggle(s)), nil
	case "a":
		return m.setVisibility(diagram.All()), nil
	}
	return m, nil
}

// setVisibility recomputes the layout and reports each status that changed.
func (m exploreModel) setVisibility(vis diagram.Visibility) exploreModel {
	if vis == m.vis {
		return m
	}
	hooks := observability.Explore()
	for _, s := range diagram.Statuses {
		if vis.Has(s) != m.vis.Has(s) {
			hooks.OnToggle(m.ctx, string(s), vis.Has(s), vis.String())
		}
	}
	m.vis = vis
	m.res = m.runner.LayoutVisible(m.ctx, m.diagram, vis, m.opts)
	return m
}

func (m exploreModel) View() string {
	var b strings.Builder

	root := m.diagram.Root
	b.WriteString(StyleTitle.Render(root.Label) + " " + StyleNumber.Render(root.Percent()))
	b.WriteString("\n\n")
	b.WriteString(m.legend())
	b.WriteString("\n\n")

	for _, cat := range m.res.Categories {
		b.WriteString(exploreGroupStyle.Render(cat.Name))
		if cat.Hidden > 0 {
			b.WriteString(exploreDimStyle.Render(fmt.Sprintf("  (+%d hidden)", cat.Hidden)))
		}
		b.WriteString("\n")
		for i, leaf := range cat.Leaves {
			branch := "├─ "
			if i == len(cat.Leaves)-1 {
				branch = "└─ "
			}
			b.WriteString("  " + exploreDimStyle.Render(branch) + statusStyle(leaf.Status).Render(leaf.Text) + "\n")
		}
	}

	stats := m.res.Stats()
	bounds := m.res.Bounds()
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render(fmt.Sprintf("%d of %d leaves · %d connectors · %.0f × %.0f px",
		stats.VisibleLeaves, stats.VisibleLeaves+stats.HiddenLeaves, stats.Connectors, bounds.Width, bounds.Height)))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render("1/2/3 toggle  a all  q quit"))
	b.WriteString("\n")
	return b.String()
}

// legend renders one swatch per status; hidden statuses are struck through.
func (m exploreModel) legend() string {
	items := make([]string, 0, len(diagram.Statuses))
	for i, s := range diagram.Statuses {
		label := fmt.Sprintf("%s (%d)", styles.StatusLabel(s), m.counts[s])
		key := exploreDimStyle.Render(fmt.Sprintf("[%d]", i+1))
		if m.vis.Has(s) {
			items = append(items, key+" "+statusStyle(s).Render(iconSwatch)+" "+StyleValue.Render(label))
		} else {
			items = append(items, key+" "+exploreDimStyle.Render(iconSwatch)+" "+exploreHiddenStyle.Render(label))
		}
	}
	return strings.Join(items, "   ")
}
