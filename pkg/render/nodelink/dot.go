package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treechart/pkg/layout"
	"github.com/matzehuels/treechart/pkg/render/styles"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the leaf status and node ID to labels.
	Detailed bool
	// Theme supplies node colours. The zero value selects [styles.Dark].
	Theme *styles.Theme
}

// ToDOT converts a layout result to Graphviz DOT. Nodes are named by their
// stable IDs so the output is identical for identical inputs.
func ToDOT(res layout.Result, opts Options) string {
	theme := styles.Dark()
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", theme.Background)
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=%q, color=%q, fontcolor=%q, fontsize=14, margin=\"0.2,0.1\"];\n",
		theme.Surface, theme.Border, theme.Text)
	fmt.Fprintf(&buf, "  edge [color=%q, arrowhead=none, penwidth=%g];\n", theme.Connector, theme.ConnectorWidth)
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	root := res.Root
	rootColor := theme.RootColor(root.Color)
	fmt.Fprintf(&buf, "  %q [shape=circle, label=%q, color=%q, fontcolor=%q, penwidth=4];\n",
		root.ID, root.Label+"\n"+root.Percent, rootColor, rootColor)

	for _, c := range res.Categories {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", c.ID, label(c.Name, c.ID, "", opts.Detailed))
		for _, l := range c.Leaves {
			fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, color=%q, fontcolor=%q];\n",
				l.ID, label(l.Text, l.ID, string(l.Status), opts.Detailed),
				theme.StatusColor(l.Status), theme.StatusColor(l.Status), theme.StatusText)
		}
	}

	buf.WriteString("\n")
	for _, conn := range res.Connectors {
		fmt.Fprintf(&buf, "  %q -> %q;\n", conn.FromID, conn.ToID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(text, id, status string, detailed bool) string {
	if !detailed {
		return text
	}
	parts := []string{text}
	if status != "" {
		parts = append(parts, "status: "+status)
	}
	parts = append(parts, "id: "+id)
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
