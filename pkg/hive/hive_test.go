package hive

import (
	"math"
	"testing"

	"github.com/matzehuels/hiveplot/pkg/errors"
	"honnef.co/go/curve"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearPt(a, b curve.Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func mustPlot(t *testing.T, groups []GroupNodes, edges []EdgeGroup, opts Options) *Plot {
	t.Helper()
	p, err := New(groups, edges, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func edges(group string, pairs ...[2]string) EdgeGroup {
	eg := EdgeGroup{Group: group}
	for _, pr := range pairs {
		eg.Edges = append(eg.Edges, Edge{Source: pr[0], Target: pr[1]})
	}
	return eg
}

// threeGroups has a within-group edge on every axis.
func threeGroups(t *testing.T, extra ...[2]string) *Plot {
	t.Helper()
	pairs := append([][2]string{{"a0", "a1"}, {"b0", "b1"}, {"c0", "c1"}}, extra...)
	return mustPlot(t,
		[]GroupNodes{
			{Group: "A", Nodes: []string{"a0", "a1"}},
			{Group: "B", Nodes: []string{"b0", "b1"}},
			{Group: "C", Nodes: []string{"c0", "c1"}},
		},
		[]EdgeGroup{edges("e", pairs...)},
		Options{},
	)
}

func TestCartesian(t *testing.T) {
	tests := []struct {
		r, theta float64
		want     curve.Point
	}{
		{10, 0, curve.Pt(0, 10)},
		{10, math.Pi / 2, curve.Pt(10, 0)},
		{10, math.Pi, curve.Pt(0, -10)},
		{10, 23, curve.Pt(10*math.Sin(23), 10*math.Cos(23))},
		{0, 1.5, curve.Pt(0, 0)},
	}
	for _, tt := range tests {
		if got := Cartesian(tt.r, tt.theta); !nearPt(got, tt.want) {
			t.Errorf("Cartesian(%v, %v) = %v, want %v", tt.r, tt.theta, got, tt.want)
		}
	}
}

func TestAngles(t *testing.T) {
	for n := 1; n <= 5; n++ {
		if got, want := MajorAngle(n), 2*math.Pi/float64(n); !near(got, want) {
			t.Errorf("MajorAngle(%d) = %v, want %v", n, got, want)
		}
		if got, want := DefaultMinorAngle(n), MajorAngle(n)/6; !near(got, want) {
			t.Errorf("DefaultMinorAngle(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	a := GroupNodes{Group: "A", Nodes: []string{"a0"}}
	tests := []struct {
		name   string
		groups []GroupNodes
		opts   Options
	}{
		{"NoGroups", nil, Options{}},
		{"DuplicateGroup", []GroupNodes{a, a}, Options{}},
		{"NegativeScale", []GroupNodes{a}, Options{Scale: -1}},
		{"NegativeInternalRadius", []GroupNodes{a}, Options{InternalRadius: -5}},
		{"MinorTooLarge", []GroupNodes{a, {Group: "B"}}, Options{MinorAngle: math.Pi}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.groups, nil, tt.opts)
			if !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
				t.Errorf("New() error = %v, want INVALID_CONFIGURATION", err)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	p := mustPlot(t, []GroupNodes{{Group: "A", Nodes: []string{"a0"}}}, nil, Options{})
	if p.Scale() != DefaultScale {
		t.Errorf("Scale = %v, want %v", p.Scale(), DefaultScale)
	}
	if p.InternalRadius() != DefaultScale*DefaultScale {
		t.Errorf("InternalRadius = %v, want %v", p.InternalRadius(), DefaultScale*DefaultScale)
	}

	p = mustPlot(t, []GroupNodes{{Group: "A", Nodes: []string{"a0"}}}, nil, Options{Scale: 4})
	if p.InternalRadius() != 16 {
		t.Errorf("InternalRadius = %v, want 16", p.InternalRadius())
	}
}

func TestSetMinorAngle(t *testing.T) {
	tests := []struct {
		name    string
		angle   float64
		wantErr bool
	}{
		{"Zero", 0, true},
		{"Small", 0.1, false},
		{"JustBelowMajor", math.Pi - 1e-6, false},
		{"EqualMajor", math.Pi, true},
		{"AboveMajor", 4, true},
		{"Negative", -0.1, true},
		{"NaN", math.NaN(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPlot(t, []GroupNodes{{Group: "A"}, {Group: "B"}}, nil, Options{})
			before := p.MinorAngle()
			err := p.SetMinorAngle(tt.angle)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
					t.Fatalf("SetMinorAngle(%v) error = %v, want INVALID_CONFIGURATION", tt.angle, err)
				}
				if p.MinorAngle() != before {
					t.Errorf("minor angle changed on error: %v", p.MinorAngle())
				}
				return
			}
			if err != nil {
				t.Fatalf("SetMinorAngle(%v): %v", tt.angle, err)
			}
			if p.MinorAngle() != tt.angle {
				t.Errorf("MinorAngle = %v, want %v", p.MinorAngle(), tt.angle)
			}
		})
	}
}

func TestZeroMinorAngleOptionKeepsDefault(t *testing.T) {
	p := mustPlot(t, []GroupNodes{{Group: "A"}, {Group: "B"}}, nil, Options{MinorAngle: 0})
	if want := p.MajorAngle() / 6; !near(p.MinorAngle(), want) {
		t.Errorf("MinorAngle = %v, want %v", p.MinorAngle(), want)
	}
}

func TestSetMinorAngleAffectsRouting(t *testing.T) {
	p := mustPlot(t,
		[]GroupNodes{{Group: "A", Nodes: []string{"a0", "a1"}}},
		[]EdgeGroup{edges("e", [2]string{"a0", "a1"})},
		Options{},
	)
	if err := p.SetMinorAngle(0.25); err != nil {
		t.Fatal(err)
	}
	c, err := p.Route("e", Edge{Source: "a0", Target: "a1"})
	if err != nil {
		t.Fatal(err)
	}
	if !near(c.StartAngle, -0.25) || !near(c.EndAngle, 0.25) {
		t.Errorf("angles = (%v, %v), want (-0.25, 0.25)", c.StartAngle, c.EndAngle)
	}
}
