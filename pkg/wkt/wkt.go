// Package wkt encodes and decodes the well-known-text geometry literals
// used to persist point and path coordinates.
//
// Numbers are rendered with the shortest decimal representation that
// parses back to the exact same float64, always with '.' as the decimal
// separator. A locale-dependent ',' separator would corrupt the literal,
// which is why no locale-aware formatting is used anywhere here.
package wkt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/diversityworkbench/divservice/pkg/ent"
)

// EncodePoint renders "POINT(<lon> <lat>[ <alt>])". It returns an empty
// string when latitude or longitude is missing or NaN; the altitude is
// appended only when present and not NaN.
func EncodePoint(lat, lon, alt *float64) string {
	if lat == nil || lon == nil || math.IsNaN(*lat) || math.IsNaN(*lon) {
		return ""
	}

	var b strings.Builder
	b.WriteString("POINT(")
	b.WriteString(formatFloat(*lon))
	b.WriteString(" ")
	b.WriteString(formatFloat(*lat))
	if alt != nil && !math.IsNaN(*alt) {
		b.WriteString(" ")
		b.WriteString(formatFloat(*alt))
	}
	b.WriteString(")")
	return b.String()
}

// EncodeLineString renders "LINESTRING(<lon> <lat>, ...)" from the given
// points in order. Points are deduplicated by exact value equality,
// keeping the first occurrence; if fewer than two unique points remain
// the result is empty, since a degenerate line is not persisted.
// Altitudes are not part of line strings.
func EncodeLineString(points []ent.Localization) string {
	unique := dedup(points)
	if len(unique) < 2 {
		return ""
	}

	coords := make([]string, len(unique))
	for i, p := range unique {
		coords[i] = fmt.Sprintf("%s %s", formatFloat(p.Longitude), formatFloat(p.Latitude))
	}
	return fmt.Sprintf("LINESTRING(%s)", strings.Join(coords, ", "))
}

type pointKey struct {
	lat, lon, alt float64
	hasAlt        bool
}

func dedup(points []ent.Localization) []ent.Localization {
	seen := make(map[pointKey]struct{}, len(points))
	var out []ent.Localization
	for _, p := range points {
		k := pointKey{lat: p.Latitude, lon: p.Longitude}
		if p.Altitude != nil {
			k.alt, k.hasAlt = *p.Altitude, true
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

// formatFloat is the round-trip-safe rendering shared by all literals.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
