package main

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// indexPadding scales the tolerance box put around every coordinate so that
// floating-point rounding in the R-tree never drops a target lying exactly on
// the blast boundary. Extra candidates are filtered by the exact edge rule.
const indexPadding = 1e-9

// BombEntry wraps a bomb center for R-tree storage
type BombEntry struct {
	Index int
	BBox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *BombEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// SpatialIndex answers "which bomb centers may lie inside this blast" queries
type SpatialIndex struct {
	tree  *rtreego.Rtree
	bombs []Bomb
	// bombs whose center cannot be represented as a finite box; always returned as candidates
	unindexed []int
}

// NewSpatialIndex creates a new spatial index over the bomb centers
func NewSpatialIndex(bombs []Bomb) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	si := &SpatialIndex{tree: tree, bombs: bombs}

	for i, b := range bombs {
		bbox, err := centerBox(b)
		if err != nil {
			si.unindexed = append(si.unindexed, i)
			continue
		}
		tree.Insert(&BombEntry{Index: i, BBox: bbox})
	}

	return si
}

// Candidates returns, in ascending order, the indices of bombs other than i
// whose centers may be reached by bomb i. The result is a superset of the
// actual targets.
func (si *SpatialIndex) Candidates(i int) []int {
	b := si.bombs[i]
	if b.Radius < 0 {
		return nil
	}

	bbox, err := blastBox(b)
	if err != nil {
		all := make([]int, 0, len(si.bombs)-1)
		for j := range si.bombs {
			if j != i {
				all = append(all, j)
			}
		}
		return all
	}

	results := si.tree.SearchIntersect(bbox)
	candidates := make([]int, 0, len(results)+len(si.unindexed))
	for _, item := range results {
		entry := item.(*BombEntry)
		if entry.Index != i {
			candidates = append(candidates, entry.Index)
		}
	}
	for _, j := range si.unindexed {
		if j != i {
			candidates = append(candidates, j)
		}
	}

	sort.Ints(candidates)
	return candidates
}

// Len returns the number of indexed bombs
func (si *SpatialIndex) Len() int {
	return si.tree.Size()
}

// centerBox builds a tiny box around a bomb center
func centerBox(b Bomb) (rtreego.Rect, error) {
	return paddedRect(b.X, b.Y, 0)
}

// blastBox builds the box covering a bomb's blast radius
func blastBox(b Bomb) (rtreego.Rect, error) {
	return paddedRect(b.X, b.Y, b.Radius)
}

func paddedRect(x, y, r float64) (rtreego.Rect, error) {
	if !isFinite(x) || !isFinite(y) || !isFinite(r) {
		return rtreego.Rect{}, errNotFinite
	}
	pad := indexPadding * (1 + math.Abs(x) + math.Abs(y) + r)
	side := 2 * (r + pad)
	minX, minY := x-r-pad, y-r-pad
	// Both corners must be representable, or the box silently loses its extent
	for _, v := range []float64{side, minX, minY, x + r + pad, y + r + pad, minX + side, minY + side} {
		if !isFinite(v) {
			return rtreego.Rect{}, errNotFinite
		}
	}
	return rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{side, side},
	)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
