package wkt

import (
	"iter"
	"strconv"
	"strings"

	"github.com/diversityworkbench/divservice/pkg/ent"
)

// Points returns a lazy, restartable sequence over the path points of a
// geometry literal (POINT or LINESTRING), in stored order. Each point
// carries its z coordinate as altitude when present. Malformed input
// yields no points.
func Points(geom string) iter.Seq[ent.Localization] {
	return func(yield func(ent.Localization) bool) {
		body, ok := literalBody(geom)
		if !ok {
			return
		}
		for _, group := range strings.Split(body, ",") {
			p, ok := parsePoint(group)
			if !ok {
				return
			}
			if !yield(p) {
				return
			}
		}
	}
}

// ParsePoints collects the path points of a geometry literal.
func ParsePoints(geom string) []ent.Localization {
	var out []ent.Localization
	for p := range Points(geom) {
		out = append(out, p)
	}
	return out
}

func literalBody(geom string) (string, bool) {
	geom = strings.TrimSpace(geom)
	open := strings.IndexByte(geom, '(')
	if open < 0 || !strings.HasSuffix(geom, ")") {
		return "", false
	}
	tag := strings.ToUpper(strings.TrimSpace(geom[:open]))
	if tag != "POINT" && tag != "LINESTRING" {
		return "", false
	}
	return geom[open+1 : len(geom)-1], true
}

// parsePoint reads "<lon> <lat>[ <alt>]".
func parsePoint(s string) (ent.Localization, bool) {
	var p ent.Localization
	fields := strings.Fields(s)
	if len(fields) < 2 || len(fields) > 3 {
		return p, false
	}
	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return p, false
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return p, false
	}
	p.Longitude, p.Latitude = lon, lat
	if len(fields) == 3 {
		alt, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return p, false
		}
		p.Altitude = &alt
	}
	return p, true
}

// FloatFromDecimal converts the text of a fixed-precision decimal column
// into a float64. The decimal carries padding zeros from its declared
// scale; stripping them before the float conversion reproduces the exact
// value the client uploaded, so coordinates round trip without drift.
// Returns nil for nil input or unparseable text.
func FloatFromDecimal(s *string) *float64 {
	if s == nil {
		return nil
	}
	txt := strings.TrimSpace(*s)
	if strings.ContainsRune(txt, '.') {
		txt = strings.TrimRight(txt, "0")
		txt = strings.TrimSuffix(txt, ".")
	}
	if txt == "" || txt == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(txt, 64)
	if err != nil {
		return nil
	}
	return &v
}
