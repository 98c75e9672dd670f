package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hiveplot/pkg/cache"
	"github.com/matzehuels/hiveplot/pkg/errors"
	"github.com/matzehuels/hiveplot/pkg/graph"
	"github.com/matzehuels/hiveplot/pkg/observability"
	"github.com/matzehuels/hiveplot/pkg/render"
)

const sampleTOML = `
[[groups]]
name = "A"
color = "red"
nodes = ["a0", "a1"]

[[groups]]
name = "B"
nodes = ["b0", "b1"]

[[edges]]
group = "calls"

[[edges.edges]]
from = "a0"
to = "b1"

[[edges.edges]]
from = "b0"
to = "b1"
`

func sampleGraph() graph.Graph {
	return graph.Graph{
		Groups: []graph.Group{
			{Name: "A", Nodes: []string{"a0", "a1"}},
			{Name: "B", Nodes: []string{"b0", "b1"}},
		},
		Edges: []graph.EdgeGroup{{Group: "calls", Edges: []graph.Edge{
			{From: "a0", To: "b1"},
			{From: "b0", To: "b1"},
		}}},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"Zero", Options{}, false},
		{"Overrides", Options{Scale: 5, InternalRadius: 10, LineWidth: 1, MinorAngle: 0.1}, false},
		{"NegativeScale", Options{Scale: -1}, true},
		{"NegativeInternalRadius", Options{InternalRadius: -1}, true},
		{"NegativeLineWidth", Options{LineWidth: -0.5}, true},
		{"NegativeMinorAngle", Options{MinorAngle: -0.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.opts.Logger == nil {
				t.Error("logger default not set")
			}
		})
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale should be %v, got %v", DefaultPNGScale, opts.PNGScale)
	}
	if opts.Margin != DefaultMargin {
		t.Errorf("Margin should be %v, got %v", DefaultMargin, opts.Margin)
	}
	if opts.Background != DefaultBackground {
		t.Errorf("Background should be %s, got %s", DefaultBackground, opts.Background)
	}
}

func TestValidateForRender(t *testing.T) {
	opts := Options{Formats: []string{"svg", "gif"}}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("unsupported format should fail")
	}
	opts = Options{Margin: -1}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("negative margin should fail")
	}
}

func TestOptionsApply(t *testing.T) {
	g := sampleGraph()
	g.Options.Scale = 4
	g.Options.LineWidth = 2

	opts := Options{Scale: 8, Directed: true}
	out := opts.Apply(g)

	if out.Options.Scale != 8 {
		t.Errorf("scale = %v, want override 8", out.Options.Scale)
	}
	if out.Options.LineWidth != 2 {
		t.Errorf("line_width = %v, want document value 2", out.Options.LineWidth)
	}
	if !out.Options.Directed {
		t.Error("directed override not applied")
	}
	if g.Options.Scale != 4 {
		t.Error("Apply must not modify its argument")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if k := opts.ArtifactKeyOpts(FormatJSON); k.Background != "" || k.PNGScale != 0 {
		t.Errorf("json key should ignore drawing options: %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Background != DefaultBackground || k.PNGScale != 0 {
		t.Errorf("svg key = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.PNGScale != DefaultPNGScale {
		t.Errorf("png key = %+v", k)
	}
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "graph.toml")
	if err := os.WriteFile(tomlPath, []byte(sampleTOML), 0644); err != nil {
		t.Fatal(err)
	}
	txtPath := filepath.Join(dir, "graph.txt")
	if err := os.WriteFile(txtPath, []byte(sampleTOML), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "File", opts: Options{Input: tomlPath}},
		{name: "FileWithFormat", opts: Options{Input: txtPath, InputFormat: graph.FormatTOML}},
		{name: "TOMLDocument", opts: Options{Document: []byte(sampleTOML)}},
		{name: "JSONDocument", opts: Options{Document: []byte(`{"groups":[{"name":"A","nodes":["a0"]}]}`)}},
		{name: "NoInput", opts: Options{}, wantErr: true},
		{name: "BadFormat", opts: Options{Document: []byte(sampleTOML), InputFormat: "yaml"}, wantErr: true},
		{name: "Missing", opts: Options{Input: filepath.Join(dir, "missing.json")}, wantErr: true},
		{name: "Dangling", opts: Options{Document: []byte(`{"groups":[{"name":"A","nodes":["a0"]}],"edges":[{"group":"e","edges":[{"from":"a0","to":"zz"}]}]}`)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(g.Groups) == 0 {
				t.Error("no groups parsed")
			}
		})
	}
}

func TestParseDanglingEdgeCode(t *testing.T) {
	_, err := Parse(Options{Document: []byte(`{"groups":[{"name":"A","nodes":["a0"]}],"edges":[{"group":"e","edges":[{"from":"a0","to":"zz"}]}]}`)})
	if !errors.IsLookup(err) {
		t.Errorf("err = %v, want a lookup error", err)
	}
}

func TestGenerateLayout(t *testing.T) {
	l, err := GenerateLayout(sampleGraph(), Options{Scale: 5})
	if err != nil {
		t.Fatalf("GenerateLayout: %v", err)
	}
	// internal radius 25 plus 5 per node on the longest axis
	if l.Radius != 35 {
		t.Errorf("radius = %v, want 35", l.Radius)
	}
	if len(l.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(l.Edges))
	}
}

func TestGenerateLayoutWarnsAboveThreeGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})

	g := graph.Graph{}
	for _, name := range []string{"A", "B", "C", "D"} {
		g.Groups = append(g.Groups, graph.Group{Name: name, Nodes: []string{strings.ToLower(name)}})
	}
	if _, err := GenerateLayout(g, Options{Logger: logger}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "at most three groups") {
		t.Errorf("missing warning, log: %q", buf.String())
	}
}

func TestRenderFromLayout(t *testing.T) {
	l, err := GenerateLayout(sampleGraph(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderFromLayout(l, Options{Formats: []string{FormatSVG, FormatJSON}, GroupLabels: true})
	if err != nil {
		t.Fatalf("RenderFromLayout: %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact = %.40q", artifacts[FormatSVG])
	}
	if !bytes.Contains(artifacts[FormatSVG], []byte(`class="labels"`)) {
		t.Error("group labels not rendered")
	}
	back, err := graph.UnmarshalLayout(artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if back.Radius != l.Radius {
		t.Errorf("json radius = %v, want %v", back.Radius, l.Radius)
	}

	data, _ := graph.MarshalLayout(l)
	fromData, err := RenderFromLayoutData(data, Options{Background: "none"})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(fromData[FormatSVG], []byte("<rect")) {
		t.Error(`background "none" should render transparent`)
	}
}

func TestRenderPNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	l, err := GenerateLayout(sampleGraph(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := RenderFromLayout(l, Options{Formats: []string{FormatPNG}})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact lacks PNG signature")
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	defer r.Close()

	opts := Options{Document: []byte(sampleTOML), Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}
	if first.Stats.GroupCount != 2 || first.Stats.NodeCount != 4 || first.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if first.GraphHash == "" {
		t.Error("graph hash not set")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	refreshed := opts
	refreshed.Refresh = true
	third, err := r.Execute(ctx, refreshed)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass the cache: %+v", third.CacheInfo)
	}

	scaled := opts
	scaled.Scale = 20
	fourth, err := r.Execute(ctx, scaled)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.LayoutHit {
		t.Error("a different scale must not reuse the cached layout")
	}
}

func TestRunnerErrorsPropagate(t *testing.T) {
	r := NewRunner(nil, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	g := sampleGraph()
	g.Edges[0].Edges[0].To = "nowhere"

	if _, err := r.ExecuteGraph(context.Background(), g, Options{}); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("err = %v, want NODE_NOT_FOUND", err)
	}
	if _, err := r.ExecuteGraph(context.Background(), sampleGraph(), Options{Formats: []string{"gif"}}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	layouts int
	renders int
}

func (h *countingHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}

func TestRunnerEmitsHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	if _, err := r.ExecuteGraph(context.Background(), sampleGraph(), Options{}); err != nil {
		t.Fatal(err)
	}
	if hooks.layouts != 1 || hooks.renders != 1 {
		t.Errorf("layouts = %d, renders = %d, want 1 each", hooks.layouts, hooks.renders)
	}
}
