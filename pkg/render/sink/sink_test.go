package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/layout"
	"github.com/matzehuels/treechart/pkg/render/styles"
	"github.com/matzehuels/treechart/pkg/samples"
)

func bronzeLayout(vis diagram.Visibility) layout.Result {
	return layout.Compute(samples.MustLoad(samples.Bronze), vis)
}

func wellFormed(t *testing.T, doc []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("SVG is not well-formed XML: %v", err)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	res := bronzeLayout(diagram.All())
	doc := RenderSVG(res, WithTitle(samples.BronzeTitle), WithLegend())
	wellFormed(t, doc)

	s := string(doc)
	if !strings.Contains(s, "<svg") {
		t.Fatal("missing <svg> element")
	}
	if got := strings.Count(s, `class="leaf `); got != 15 {
		t.Errorf("leaf boxes = %d, want 15", got)
	}
	if got := strings.Count(s, `class="category"`); got != 6 {
		t.Errorf("category boxes = %d, want 6", got)
	}
	if got := strings.Count(s, `class="connector `); got != len(res.Connectors) {
		t.Errorf("connectors = %d, want %d", got, len(res.Connectors))
	}
	if !strings.Contains(s, samples.BronzeTitle) {
		t.Error("missing title")
	}
	if !strings.Contains(s, "53%") {
		t.Error("missing root percentage")
	}
	if !strings.Contains(s, `id="node-`+diagram.RootID+`"`) {
		t.Error("missing root id")
	}
	if !strings.Contains(s, "#CD7F32") {
		t.Error("missing root colour")
	}
}

func TestRenderSVGHiddenStatus(t *testing.T) {
	res := bronzeLayout(diagram.All().Without(diagram.StatusIncomplete))
	s := string(RenderSVG(res, WithLegend()))

	if strings.Contains(s, `class="leaf incomplete"`) {
		t.Error("hidden leaves were drawn")
	}
	if got := strings.Count(s, `class="leaf `); got != 13 {
		t.Errorf("leaf boxes = %d, want 13", got)
	}
	if !strings.Contains(s, `class="legend-swatch incomplete"`) {
		t.Error("legend should still list hidden statuses")
	}
}

func TestRenderSVGText(t *testing.T) {
	d := &diagram.Diagram{
		Root: diagram.Root{Label: "R&D", CompletionRatio: 1},
		Categories: []diagram.Category{{
			Name:   "<tags>",
			Leaves: []diagram.Leaf{{Text: strings.Repeat("字", 50), Status: diagram.StatusCompleted}},
		}},
	}
	doc := RenderSVG(layout.Compute(d, diagram.All()))
	wellFormed(t, doc)

	s := string(doc)
	if !strings.Contains(s, "R&amp;D") {
		t.Error("label not escaped")
	}
	if !strings.Contains(s, "&lt;tags&gt;") {
		t.Error("category name not escaped")
	}
	// Two root lines, one category line, and 50 glyphs at 23 per line.
	if got := strings.Count(s, "<text"); got != 6 {
		t.Errorf("text elements = %d, want 6", got)
	}

	if bytes.Contains(RenderSVG(layout.Compute(d, diagram.All()), WithoutText()), []byte("<text")) {
		t.Error("WithoutText still drew text")
	}
}

func TestRenderSVGThemes(t *testing.T) {
	res := bronzeLayout(diagram.All())
	for _, name := range styles.Names() {
		th, err := styles.ByName(name)
		if err != nil {
			t.Fatal(err)
		}
		s := string(RenderSVG(res, WithTheme(th)))
		if !strings.Contains(s, "fill:"+th.Background) {
			t.Errorf("%s: background not drawn", name)
		}
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	doc := RenderSVG(layout.Compute(&diagram.Diagram{}, diagram.All()))
	wellFormed(t, doc)
}

func TestRenderPNG(t *testing.T) {
	res := bronzeLayout(diagram.All())
	data, err := RenderPNG(res, WithScale(1), WithPNGSVGOptions(WithLegend()))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	b := res.Bounds()
	wantW := int(b.Width + 2*defaultMargin)
	if got := img.Bounds().Dx(); got < wantW || got > wantW+1 {
		t.Errorf("width = %d, want about %d", got, wantW)
	}
}

func TestRenderPNGInvalidScale(t *testing.T) {
	if _, err := RenderPNG(bronzeLayout(diagram.All()), WithScale(0)); err == nil {
		t.Error("expected error for zero scale")
	}
	if _, err := RenderPNG(bronzeLayout(diagram.All()), WithScale(1e6)); err == nil {
		t.Error("expected error for oversized image")
	}
}

func TestRenderJSON(t *testing.T) {
	res := bronzeLayout(diagram.VisibilityOf(diagram.StatusCompleted))
	data, err := RenderJSON(res, WithJSONTheme("dark"), WithJSONTitle("bronze"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Theme != "dark" || out.Title != "bronze" {
		t.Errorf("theme/title = %q/%q", out.Theme, out.Title)
	}
	if len(out.Visible) != 1 || out.Visible[0] != diagram.StatusCompleted {
		t.Errorf("Visible = %v, want [completed]", out.Visible)
	}
	if out.Stats.VisibleLeaves != 8 || out.Stats.HiddenLeaves != 7 {
		t.Errorf("Stats = %+v", out.Stats)
	}
	if out.TotalHeight != res.TotalHeight {
		t.Errorf("TotalHeight = %v, want %v", out.TotalHeight, res.TotalHeight)
	}
	if len(out.Categories) != 6 {
		t.Errorf("Categories = %d, want 6", len(out.Categories))
	}
	if out.Categories[0].Leaves[0].ID != res.Categories[0].Leaves[0].ID {
		t.Error("leaf IDs not preserved")
	}
	if out.Categories[0].Y != res.Categories[0].Y {
		t.Error("category box not flattened into JSON")
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(layout.Compute(nil, diagram.None()))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"categories": []`, `"connectors": []`, `"visible": []`} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %s in %s", want, s)
		}
	}
}
