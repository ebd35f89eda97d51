package charts

import "math"

// Label geometry in pixels.
const (
	LabelFontSize   = 10
	LabelCharWidth  = 5.5
	LabelHeight     = 14
	LabelPadX       = 4
	LabelPadY       = 2
	DotHitRadius    = 9
	LeaderThreshold = 25

	DefaultLayoutIterations = 120
)

// LabelRect is a text label box anchored to a plotted dot.
type LabelRect struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	DotX float64 `json:"dot_x"`
	DotY float64 `json:"dot_y"`
	Name string  `json:"name"`
}

// NewLabel places a label for name up and to the right of the dot at (cx, cy).
func NewLabel(name string, cx, cy float64) LabelRect {
	return LabelRect{
		X:    cx + 10,
		Y:    cy - LabelHeight - 4,
		W:    float64(len(name)) * LabelCharWidth,
		H:    LabelHeight,
		DotX: cx,
		DotY: cy,
		Name: name,
	}
}

// ShowLeader reports whether the label drifted far enough from its dot to
// need a connecting line.
func (l LabelRect) ShowLeader() bool {
	edgeX := l.X
	if l.X < l.DotX {
		edgeX = l.X + l.W
	}
	edgeY := l.Y + l.H/2
	return math.Hypot(edgeX-l.DotX, edgeY-l.DotY) > LeaderThreshold
}

func (l LabelRect) overlapsLabel(o LabelRect) bool {
	overlapX := l.X-LabelPadX < o.X+o.W+LabelPadX && l.X+l.W+LabelPadX > o.X-LabelPadX
	overlapY := l.Y-LabelPadY < o.Y+o.H+LabelPadY && l.Y+l.H+LabelPadY > o.Y-LabelPadY
	return overlapX && overlapY
}

func (l LabelRect) overlapsDot(x, y float64) bool {
	overlapX := l.X-LabelPadX < x+DotHitRadius && l.X+l.W+LabelPadX > x-DotHitRadius
	overlapY := l.Y-LabelPadY < y+DotHitRadius && l.Y+l.H+LabelPadY > y-DotHitRadius
	return overlapX && overlapY
}

// ResolveOverlaps nudges labels apart for at most iterations passes and
// returns the moved copies. It stops early once a pass finds no overlap.
// Label pairs are pushed apart, mostly vertically, and labels covering
// another point's dot are pushed off it vertically.
func ResolveOverlaps(labels []LabelRect, iterations int) []LabelRect {
	resolved := make([]LabelRect, len(labels))
	copy(resolved, labels)

	for range iterations {
		anyOverlap := false

		for i := range resolved {
			for j := i + 1; j < len(resolved); j++ {
				a, b := &resolved[i], &resolved[j]
				if !a.overlapsLabel(*b) {
					continue
				}
				anyOverlap = true

				dx := (a.X + a.W/2) - (b.X + b.W/2)
				dy := (a.Y + a.H/2) - (b.Y + b.H/2)

				pushX := 0.5
				if dx != 0 {
					pushX = sign(dx) * 1.5
				}
				pushY := -1.5
				if dy != 0 {
					pushY = sign(dy) * 3
				}

				a.X += pushX
				a.Y += pushY
				b.X -= pushX
				b.Y -= pushY
			}

			for j := range resolved {
				if i == j {
					continue
				}
				label := &resolved[i]
				dotX, dotY := resolved[j].DotX, resolved[j].DotY
				if !label.overlapsDot(dotX, dotY) {
					continue
				}
				anyOverlap = true
				dy := (label.Y + label.H/2) - dotY
				if dy == 0 {
					label.Y -= 3
				} else {
					label.Y += sign(dy) * 3
				}
			}
		}

		if !anyOverlap {
			break
		}
	}
	return resolved
}

// Projector maps data coordinates to pixels: X on a log scale, Y linear with
// the origin at the bottom.
type Projector struct {
	Width   float64
	Height  float64
	XDomain Domain
	YDomain Domain
}

// Project converts a data point to pixel coordinates.
func (p Projector) Project(x, y float64) (float64, float64) {
	var px float64
	lo, hi := math.Log10(p.XDomain.Min), math.Log10(p.XDomain.Max)
	if hi > lo && x > 0 {
		px = (math.Log10(x) - lo) / (hi - lo) * p.Width
	}
	var py float64
	if span := p.YDomain.Span(); span > 0 {
		py = p.Height - (y-p.YDomain.Min)/span*p.Height
	}
	return px, py
}

// LayoutLabels projects points and resolves their label collisions.
func LayoutLabels(points []Point, proj Projector) []LabelRect {
	labels := make([]LabelRect, 0, len(points))
	for _, pt := range points {
		cx, cy := proj.Project(pt.X, pt.Y)
		labels = append(labels, NewLabel(pt.Name, cx, cy))
	}
	return ResolveOverlaps(labels, DefaultLayoutIterations)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
