// Package charts derives the chart-ready parameters of every graph view from
// leaderboard data. All functions are pure; insufficient data is reported as
// a display state rather than an error.
package charts

import (
	"fmt"
	"math"
	"sort"

	"github.com/pinchbench/pinchboard/internal/models"
)

// Axis selects the X metric of a scatter chart.
type Axis string

const (
	AxisCost  Axis = "cost"
	AxisSpeed Axis = "speed"
)

// ParseAxis maps user input to an Axis, defaulting to AxisCost.
func ParseAxis(s string) Axis {
	if Axis(s) == AxisSpeed {
		return AxisSpeed
	}
	return AxisCost
}

// Label is the human axis title.
func (a Axis) Label() string {
	if a == AxisSpeed {
		return "Execution Time (seconds, Log Scale)"
	}
	return "Cost (USD, Log Scale)"
}

// noun names the metric in user-facing messages.
func (a Axis) noun() string {
	if a == AxisSpeed {
		return "speed"
	}
	return "cost"
}

// FormatTick renders an X axis value the way the chart labels it.
func (a Axis) FormatTick(v float64) string {
	if a == AxisCost {
		switch {
		case v >= 1:
			return fmt.Sprintf("$%.0f", v)
		case v >= 0.01:
			return fmt.Sprintf("$%.2f", v)
		default:
			return fmt.Sprintf("$%.3f", v)
		}
	}
	switch {
	case v >= 100:
		return fmt.Sprintf("%.0fs", v)
	case v >= 1:
		return fmt.Sprintf("%.1fs", v)
	default:
		return fmt.Sprintf("%.2fs", v)
	}
}

// Point is one plotted model.
type Point struct {
	Name     string  `json:"name"`
	Provider string  `json:"provider"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Color    string  `json:"color"`
}

// ProviderLegend is one entry of the clickable provider legend.
type ProviderLegend struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Hidden bool   `json:"hidden"`
}

// Scatter holds everything needed to draw a performance-vs-X chart.
type Scatter struct {
	Axis        Axis             `json:"axis"`
	XLabel      string           `json:"x_label"`
	YLabel      string           `json:"y_label"`
	Points      []Point          `json:"points"`
	HiddenCount int              `json:"hidden_count"`
	Providers   []ProviderLegend `json:"providers"`
	XDomain     Domain           `json:"x_domain"`
	YDomain     Domain           `json:"y_domain"`
	QuadrantX   float64          `json:"quadrant_x"`
	QuadrantY   float64          `json:"quadrant_y"`
	Sufficient  bool             `json:"sufficient"`
	EmptyReason string           `json:"empty_reason,omitempty"`
}

// InAttractiveQuadrant reports whether p is cheap or fast and scores well.
func (s Scatter) InAttractiveQuadrant(p Point) bool {
	return p.X <= s.QuadrantX && p.Y >= s.QuadrantY
}

// HiddenNote describes models left out for lack of data, or "" if none.
func (s Scatter) HiddenNote() string {
	if s.HiddenCount == 0 {
		return ""
	}
	plural := "s"
	if s.HiddenCount == 1 {
		plural = ""
	}
	return fmt.Sprintf("%d model%s hidden (no %s data available)", s.HiddenCount, plural, s.Axis.noun())
}

// BuildScatter plots score against cost or speed for every entry with data.
// Axis domains are derived from all plottable points before providers in
// hidden are removed, so toggling providers keeps the axes stable.
func BuildScatter(entries []models.LeaderboardEntry, mode models.ScoreMode, axis Axis, hidden map[string]bool) Scatter {
	all := make([]Point, 0, len(entries))
	colors := map[string]string{}

	for _, e := range entries {
		y := e.Score(mode)
		var x *float64
		if axis == AxisSpeed {
			x = e.ExecutionTime(mode)
		} else {
			x = e.Cost(mode)
		}
		if y == nil || x == nil || *x <= 0 {
			continue
		}
		color := ProviderColor(e.Provider)
		colors[e.Provider] = color
		all = append(all, Point{Name: e.Model, Provider: e.Provider, X: *x, Y: *y, Color: color})
	}

	s := Scatter{
		Axis:        axis,
		XLabel:      axis.Label(),
		YLabel:      "Success Rate (%)",
		HiddenCount: len(entries) - len(all),
		XDomain:     Domain{Min: 0.001, Max: 100},
		YDomain:     Domain{Min: 0, Max: 100},
	}

	for name, color := range colors {
		s.Providers = append(s.Providers, ProviderLegend{Name: name, Color: color, Hidden: hidden[name]})
	}
	coll := newCollator()
	sort.Slice(s.Providers, func(i, j int) bool { return coll.CompareString(s.Providers[i].Name, s.Providers[j].Name) < 0 })

	if len(all) > 0 {
		xs := make([]float64, len(all))
		ys := make([]float64, len(all))
		for i, p := range all {
			xs[i], ys[i] = p.X, p.Y
		}
		xMin, xMax := minMax(xs)
		s.XDomain = Domain{Min: xMin * 0.7, Max: xMax * 1.4}
		s.QuadrantX = math.Sqrt(xMin * xMax)

		s.YDomain = ScoreDomain(ys)
	} else {
		s.QuadrantX = s.XDomain.Max / 2
	}
	s.QuadrantY = (s.YDomain.Min + s.YDomain.Max) / 2

	s.Points = make([]Point, 0, len(all))
	for _, p := range all {
		if !hidden[p.Provider] {
			s.Points = append(s.Points, p)
		}
	}

	s.Sufficient = len(s.Points) >= 2
	if !s.Sufficient {
		if len(all) < 2 {
			s.EmptyReason = fmt.Sprintf("Not enough data to display chart. At least 2 models with %s data are needed.", axis.noun())
		} else {
			s.EmptyReason = "Too many providers hidden. Click providers above to show them."
		}
	}
	return s
}

// ScoreDomain pads the range of 0-100 scores to multiples of 5 and widens it
// to at least 20 points around its midpoint. Empty input yields [0, 100].
func ScoreDomain(scores []float64) Domain {
	if len(scores) == 0 {
		return Domain{Min: 0, Max: 100}
	}
	d := paddedPercentDomain(minMax(scores))
	if d.Span() < 20 {
		mid := (d.Min + d.Max) / 2
		d = Domain{Min: math.Max(0, mid-10), Max: math.Min(100, mid+10)}
	}
	return d
}
