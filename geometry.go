package main

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Bomb is a circle: center coordinates plus blast radius.
// Bombs are identified only by their position in the input slice.
type Bomb struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Center returns the bomb's center as an orb point
func (b Bomb) Center() orb.Point {
	return orb.Point{b.X, b.Y}
}

// Bound returns the axis-aligned box covered by the blast radius.
// A negative radius covers nothing and yields an empty bound at the center.
func (b Bomb) Bound() orb.Bound {
	r := b.Radius
	if r < 0 {
		r = 0
	}
	return orb.Bound{
		Min: orb.Point{b.X - r, b.Y - r},
		Max: orb.Point{b.X + r, b.Y + r},
	}
}

// Distance calculates Euclidean distance between the centers of two bombs
func (b Bomb) Distance(other Bomb) float64 {
	return planar.Distance(b.Center(), other.Center())
}

// Reaches reports whether detonating b detonates other.
// Only b's radius is considered: the blast must cover other's center point.
func (b Bomb) Reaches(other Bomb) bool {
	return b.Distance(other) <= b.Radius
}

// ParseBomb builds a bomb from three raw input fields.
// It returns false when any field is not a valid floating-point number,
// in which case the bomb must be discarded. Parsing is strict: a numeric
// prefix followed by other text, such as "3px", is not accepted as 3.
func ParseBomb(x, y, radius string) (Bomb, bool) {
	var vals [3]float64
	for i, raw := range [3]string{x, y, radius} {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) {
			return Bomb{}, false
		}
		vals[i] = v
	}
	return Bomb{X: vals[0], Y: vals[1], Radius: vals[2]}, true
}

// sceneBound returns the bound enclosing every bomb's blast area
func sceneBound(bombs []Bomb) orb.Bound {
	if len(bombs) == 0 {
		return orb.Bound{}
	}
	bound := bombs[0].Bound()
	for _, b := range bombs[1:] {
		bound = bound.Union(b.Bound())
	}
	return bound
}
