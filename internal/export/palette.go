package export

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// DefaultPalette is used when a palette name is unknown.
const DefaultPalette = "VIBRANT"

// Palettes are ordered for contrast between neighbouring legend entries.
var Palettes = map[string][]string{
	"VIBRANT": {"#ef4444", "#3b82f6", "#22c55e", "#f97316", "#8b5cf6", "#06b6d4", "#d946ef", "#eab308"},
	"PASTEL":  {"#fca5a5", "#93c5fd", "#86efac", "#fdba74", "#c4b5fd", "#67e8f9", "#f0abfc", "#fde047"},
	"DARK":    {"#b91c1c", "#1d4ed8", "#15803d", "#c2410c", "#7e22ce", "#0f766e", "#be185d", "#374151"},
	"EARTH":   {"#a0522d", "#4682b4", "#228b22", "#daa520", "#708090", "#8b4513", "#cd5c5c", "#556b2f"},
}

// PaletteNames lists the palettes in a stable order.
func PaletteNames() []string {
	return sortedKeys(Palettes)
}

// Palette returns the named palette, case-insensitively, or the default.
func Palette(name string) []string {
	if p, ok := Palettes[strings.ToUpper(name)]; ok {
		return p
	}
	return Palettes[DefaultPalette]
}

// MissingValue labels features lacking the color field.
const MissingValue = "N/A"

type LegendEntry struct {
	Value string `json:"value"`
	Color string `json:"color"`
}

// ColorMapping assigns a palette color to every distinct value of field,
// in sorted value order, cycling through the palette.
func ColorMapping(fc *geojson.FeatureCollection, field, palette string) []LegendEntry {
	if fc == nil || field == "" {
		return nil
	}
	seen := map[string]bool{}
	var values []string
	for _, f := range fc.Features {
		v := MissingValue
		if f != nil {
			if raw, ok := f.Properties[field]; ok && raw != nil {
				v = valueString(raw)
			}
		}
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)

	colors := Palette(palette)
	out := make([]LegendEntry, len(values))
	for i, v := range values {
		out[i] = LegendEntry{Value: v, Color: colors[i%len(colors)]}
	}
	return out
}

// valueString matches how the exported page stringifies property values
// when looking up their color.
func valueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if a := math.Abs(t); a == 0 || (a >= 1e-6 && a < 1e21) {
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			if e != nil {
				parts[i] = valueString(e)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
