package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/treechart/pkg/io"
	"github.com/matzehuels/treechart/pkg/observability"
	"github.com/matzehuels/treechart/pkg/pipeline"
)

// execute runs the root command with args and an isolated config directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(&logs)
	err := root.Execute()
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
		{"spaces and empties", " svg, ,dot ", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/bronze.yaml", "data/bronze"},
		{"", "sample:bronze", "bronze"},
		{"out/chart", "x.yaml", "out/chart"},
		{"out/chart.svg", "x.yaml", "out/chart"},
		{"out/chart.nodelink.svg", "x.yaml", "out/chart"},
		{"out/chart.v2", "x.yaml", "out/chart.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "chart")

	out, err := execute(t, "render", "sample:bronze", "-o", base, "-f", "svg,json,dot", "--show", "completed,priority")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, ext := range []string{"svg", "json", "dot"} {
		if _, err := os.Stat(base + "." + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
	if !strings.Contains(out, "13 leaves") || !strings.Contains(out, "2 hidden") {
		t.Errorf("summary should report visible and hidden leaves:\n%s", out)
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Visible []string `json:"visible"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if strings.Join(doc.Visible, ",") != "completed,priority" {
		t.Errorf("visible = %v", doc.Visible)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", "sample:bronze", "-f", "gif", "-o", filepath.Join(t.TempDir(), "x")}},
		{"bad status", []string{"render", "sample:bronze", "--show", "done", "-o", filepath.Join(t.TempDir(), "x")}},
		{"missing dataset", []string{"render", filepath.Join(t.TempDir(), "none.yaml")}},
		{"no args", []string{"render"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderUsesConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfg, []byte("[render]\nformats = [\"json\"]\nshow = \"incomplete\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	base := filepath.Join(dir, "chart")

	// --show on the command line wins over the config file.
	if _, err := execute(t, "--config", cfg, "render", "sample:bronze", "-o", base, "--show", "all"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Fatalf("config formats not applied: %v", err)
	}
	if _, err := os.Stat(base + ".svg"); err == nil {
		t.Error("svg should not be written when config selects json")
	}

	data, _ := os.ReadFile(base + ".json")
	if !bytes.Contains(data, []byte(`"incomplete"`)) || !bytes.Contains(data, []byte(`"completed"`)) {
		t.Errorf("--show all should override config show")
	}
}

func TestLayoutCommandStdout(t *testing.T) {
	out, err := execute(t, "layout", "sample:bronze", "-o", "-")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("layout output is not JSON: %v", err)
	}
	if _, ok := doc["connectors"]; !ok {
		t.Error("layout JSON should contain connectors")
	}
}

func TestLayoutCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bronze.layout.json")
	out, err := execute(t, "layout", "sample:bronze", "-o", path, "--show", "none")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "0 leaves") || !strings.Contains(out, "15 hidden") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestSampleCommand(t *testing.T) {
	out, err := execute(t, "sample")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if !strings.Contains(out, "categories:") {
		t.Errorf("stdout sample should be YAML:\n%s", out)
	}

	for _, ext := range []string{"json", "toml", "yaml"} {
		path := filepath.Join(t.TempDir(), "bronze."+ext)
		if _, err := execute(t, "sample", "-o", path); err != nil {
			t.Fatalf("sample -o %s: %v", path, err)
		}
		d, err := io.Import(path)
		if err != nil {
			t.Fatalf("import %s: %v", path, err)
		}
		if d.LeafCount() != 15 {
			t.Errorf("%s: leaves = %d, want 15", ext, d.LeafCount())
		}
	}

	if _, err := execute(t, "sample", "--name", "gold"); err == nil {
		t.Error("unknown sample should fail")
	}
	if _, err := execute(t, "sample", "--format", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treechart", "config.toml")

	out, err := execute(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}

	if _, err := execute(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	opts, err := pipeline.LoadConfig(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if opts.Render.Theme != pipeline.DefaultTheme {
		t.Errorf("theme = %q", opts.Render.Theme)
	}

	out, err = execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[layout]") || !strings.Contains(out, "leaf_width") {
		t.Errorf("config show output:\n%s", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "treechart") {
		t.Error("bash completion should mention the command name")
	}
}
