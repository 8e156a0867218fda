package main

import (
	"github.com/paulmach/orb/geojson"
)

// ResultFeatureCollection builds the data a renderer needs to draw a
// detonation: one Point feature per bomb, in input order.
//
// "highlighted" marks the first MaxDetonated bombs by input order, which is
// what the browser page animates. "detonated" marks membership in the
// trigger's actual chain.
func ResultFeatureCollection(bombs []Bomb, result *Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	inChain := make(map[int]bool)
	highlighted := 0
	if result != nil {
		highlighted = result.MaxDetonated
		for _, idx := range result.Chain {
			inChain[idx] = true
		}
	}

	for i, b := range bombs {
		f := geojson.NewFeature(b.Center())
		f.Properties["index"] = i
		f.Properties["radius"] = b.Radius
		f.Properties["highlighted"] = i < highlighted
		f.Properties["detonated"] = inChain[i]
		fc.Append(f)
	}

	if len(bombs) > 0 {
		bound := sceneBound(bombs)
		fc.BBox = geojson.NewBBox(bound)
	}

	return fc
}
