package wkt_test

import (
	"math"
	"testing"

	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/diversityworkbench/divservice/pkg/wkt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestEncodePoint(t *testing.T) {
	tests := []struct {
		msg           string
		lat, lon, alt *float64
		res           string
	}{
		{
			msg: "point with altitude",
			lat: ptr(33), lon: ptr(12), alt: ptr(1),
			res: "POINT(12 33 1)",
		},
		{
			msg: "point without altitude",
			lat: ptr(48.1512), lon: ptr(11.4681),
			res: "POINT(11.4681 48.1512)",
		},
		{
			msg: "shortest round-trip formatting",
			lat: ptr(0.1), lon: ptr(-10.25),
			res: "POINT(-10.25 0.1)",
		},
		{
			msg: "missing latitude",
			lon: ptr(12),
			res: "",
		},
		{
			msg: "missing longitude",
			lat: ptr(33),
			res: "",
		},
		{
			msg: "NaN latitude",
			lat: ptr(math.NaN()), lon: ptr(12),
			res: "",
		},
		{
			msg: "NaN altitude is dropped",
			lat: ptr(33), lon: ptr(12), alt: ptr(math.NaN()),
			res: "POINT(12 33)",
		},
	}

	for _, v := range tests {
		res := wkt.EncodePoint(v.lat, v.lon, v.alt)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestEncodeLineString(t *testing.T) {
	tests := []struct {
		msg  string
		locs []ent.Localization
		res  string
	}{
		{
			msg: "two points",
			locs: []ent.Localization{
				{Latitude: 33, Longitude: 12},
				{Latitude: 34, Longitude: 13},
			},
			res: "LINESTRING(12 33, 13 34)",
		},
		{
			msg: "duplicate points collapse",
			locs: []ent.Localization{
				{Latitude: 33, Longitude: 12},
				{Latitude: 33, Longitude: 12},
				{Latitude: 34, Longitude: 13},
			},
			res: "LINESTRING(12 33, 13 34)",
		},
		{
			msg: "one unique point is not a line",
			locs: []ent.Localization{
				{Latitude: 33, Longitude: 12},
				{Latitude: 33, Longitude: 12},
			},
			res: "",
		},
		{
			msg:  "empty path",
			locs: nil,
			res:  "",
		},
		{
			msg: "altitudes are not part of line strings",
			locs: []ent.Localization{
				{Latitude: 33, Longitude: 12, Altitude: ptr(540)},
				{Latitude: 34, Longitude: 13, Altitude: ptr(560)},
			},
			res: "LINESTRING(12 33, 13 34)",
		},
	}

	for _, v := range tests {
		res := wkt.EncodeLineString(v.locs)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestParsePoints(t *testing.T) {
	tests := []struct {
		msg  string
		geom string
		res  []ent.Localization
	}{
		{
			msg:  "single point",
			geom: "POINT(11.4681 48.1512)",
			res: []ent.Localization{
				{Latitude: 48.1512, Longitude: 11.4681},
			},
		},
		{
			msg:  "point with altitude",
			geom: "POINT(12 33 1)",
			res: []ent.Localization{
				{Latitude: 33, Longitude: 12, Altitude: ptr(1)},
			},
		},
		{
			msg:  "linestring",
			geom: "LINESTRING(12 33, 13 34)",
			res: []ent.Localization{
				{Latitude: 33, Longitude: 12},
				{Latitude: 34, Longitude: 13},
			},
		},
		{
			msg:  "empty input",
			geom: "",
			res:  nil,
		},
		{
			msg:  "unknown geometry type",
			geom: "POLYGON((0 0, 1 0, 1 1, 0 0))",
			res:  nil,
		},
	}

	for _, v := range tests {
		res := wkt.ParsePoints(v.geom)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestPointsIsRestartable(t *testing.T) {
	seq := wkt.Points("LINESTRING(12 33, 13 34)")

	for i := 0; i < 2; i++ {
		var count int
		for range seq {
			count++
		}
		require.Equal(t, 2, count, "pass %d", i)
	}
}

func TestPointsEarlyStop(t *testing.T) {
	var first *ent.Localization
	for p := range wkt.Points("LINESTRING(12 33, 13 34, 14 35)") {
		first = &p
		break
	}
	require.NotNil(t, first)
	assert.Equal(t, 33.0, first.Latitude)
	assert.Equal(t, 12.0, first.Longitude)
}

func TestFloatFromDecimal(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		msg string
		in  *string
		res *float64
	}{
		{msg: "nil input", in: nil, res: nil},
		{msg: "plain value", in: str("48.1512"), res: ptr(48.1512)},
		{msg: "scale padding stripped", in: str("48.1512000000"), res: ptr(48.1512)},
		{msg: "integral value", in: str("520.000000"), res: ptr(520)},
		{msg: "whitespace tolerated", in: str(" 11.4681 "), res: ptr(11.4681)},
		{
			msg: "full decimal(25,20) scale",
			in:  str("11.46810000000000000000"),
			res: ptr(11.4681),
		},
		{
			msg: "scale beyond float precision keeps nearest value",
			in:  str("11.46810000000000123000"),
			res: ptr(11.46810000000000123),
		},
		{msg: "negative value", in: str("-10.2500"), res: ptr(-10.25)},
		{msg: "garbage", in: str("not a number"), res: nil},
	}

	for _, v := range tests {
		res := wkt.FloatFromDecimal(v.in)
		if v.res == nil {
			assert.Nil(t, res, v.msg)
			continue
		}
		require.NotNil(t, res, v.msg)
		assert.Equal(t, *v.res, *res, v.msg)
	}
}
