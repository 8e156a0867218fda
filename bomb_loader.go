package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// LoadBombs reads a bomb list from a .json, .geojson or .hcl file.
// Entries whose fields are not valid numbers are discarded, matching the
// interactive input rules; a malformed document is an error.
func LoadBombs(path string) ([]Bomb, error) {
	log.Printf("📂 Loading bombs from %s...\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var bombs []Bomb
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		bombs, err = parseJSONBombs(data)
	case ".geojson":
		bombs, err = parseGeoJSONBombs(data)
	case ".hcl":
		bombs, err = parseHCLBombs(data, path)
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("   ✅ Bombs loaded: %d\n", len(bombs))
	return bombs, nil
}

// BombInput is the raw form of a bomb as entered by a user: each field may
// be a JSON number or a string holding a number.
type BombInput struct {
	X      json.RawMessage `json:"x"`
	Y      json.RawMessage `json:"y"`
	Radius json.RawMessage `json:"radius"`
}

// Bomb validates the raw fields. It returns false if the bomb must be discarded.
func (in BombInput) Bomb() (Bomb, bool) {
	return ParseBomb(rawField(in.X), rawField(in.Y), rawField(in.Radius))
}

// rawField returns the textual content of a JSON number or string
func rawField(m json.RawMessage) string {
	if len(m) > 0 && m[0] == '"' {
		var s string
		if err := json.Unmarshal(m, &s); err != nil {
			return ""
		}
		return s
	}
	return string(m)
}

// parseJSONBombs parses `[{"x": .., "y": .., "radius": ..}, ...]`
func parseJSONBombs(data []byte) ([]Bomb, error) {
	var inputs []BombInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bombs: %w", err)
	}
	return validateInputs(inputs), nil
}

// validateInputs keeps the inputs that parse as bombs, in order
func validateInputs(inputs []BombInput) []Bomb {
	bombs := make([]Bomb, 0, len(inputs))
	for i, in := range inputs {
		b, ok := in.Bomb()
		if !ok {
			log.Printf("⚠️  Discarding bomb %d: fields must be numbers\n", i)
			continue
		}
		bombs = append(bombs, b)
	}
	return bombs
}

// parseGeoJSONBombs reads Point features carrying a "radius" property
func parseGeoJSONBombs(data []byte) ([]Bomb, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	bombs := make([]Bomb, 0, len(fc.Features))
	for i, feature := range fc.Features {
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			log.Printf("⚠️  Discarding feature %d: expected Point geometry\n", i)
			continue
		}

		radius, ok := propertyFloat(feature.Properties, "radius")
		if !ok {
			log.Printf("⚠️  Discarding feature %d: missing or invalid radius\n", i)
			continue
		}

		b := Bomb{X: point.X(), Y: point.Y(), Radius: radius}
		bombs = append(bombs, b)
	}

	return bombs, nil
}

// propertyFloat reads a numeric property stored as a JSON number or numeric string
func propertyFloat(props geojson.Properties, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}

type hclBombFile struct {
	Bombs  []*hclBomb `hcl:"bomb,block"`
	Remain hcl.Body   `hcl:",remain"`
}

type hclBomb struct {
	X      hcl.Expression `hcl:"x,optional"`
	Y      hcl.Expression `hcl:"y,optional"`
	Radius hcl.Expression `hcl:"radius,optional"`
}

// parseHCLBombs reads `bomb { x = .. y = .. radius = .. }` blocks
func parseHCLBombs(data []byte, filename string) ([]Bomb, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root hclBombFile
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	bombs := make([]Bomb, 0, len(root.Bombs))
	for i, block := range root.Bombs {
		var vals [3]float64
		valid := true
		for k, expr := range []hcl.Expression{block.X, block.Y, block.Radius} {
			v, ok := hclNumber(expr)
			if !ok {
				valid = false
				break
			}
			vals[k] = v
		}
		if !valid {
			log.Printf("⚠️  Discarding bomb block %d in %s: fields must be numbers\n", i, filename)
			continue
		}
		bombs = append(bombs, Bomb{X: vals[0], Y: vals[1], Radius: vals[2]})
	}

	return bombs, nil
}

// hclNumber evaluates a constant expression and converts it to a float
func hclNumber(expr hcl.Expression) (float64, bool) {
	if expr == nil {
		return 0, false
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() || val.IsNull() || !val.IsKnown() {
		return 0, false
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, false
	}
	bf := num.AsBigFloat()
	f, _ := bf.Float64()
	// Out of float64 range, as strconv.ParseFloat reports for the other formats
	if math.IsInf(f, 0) && !bf.IsInf() {
		return 0, false
	}
	return f, true
}
