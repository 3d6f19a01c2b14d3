package geom

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collection(geoms ...orb.Geometry) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, g := range geoms {
		fc.Append(geojson.NewFeature(g))
	}
	return fc
}

func TestFromCollection_Points(t *testing.T) {
	fc := collection(orb.Point{-74, 40.7}, orb.Point{-0.1, 51.5})

	d, err := FromCollection(fc)

	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{-74, 40.7}, {-0.1, 51.5}}, d.Points)
	assert.Equal(t, []int{0, 1}, d.PointFeature)
	assert.Empty(t, d.Lines)
	assert.Empty(t, d.Polygons)
	assert.Equal(t, BBox{MinX: -74, MinY: 40.7, MaxX: -0.1, MaxY: 51.5}, d.BBox)
	assert.False(t, d.BBox.Empty())
}

func TestFromCollection_Classifies(t *testing.T) {
	fc := collection(
		orb.LineString{{0, 0}, {2, 2}},
		orb.MultiPolygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}},
		orb.Collection{orb.Point{5, -3}, orb.MultiLineString{{{1, 1}, {3, 1}}}},
	)
	fc.Append(&geojson.Feature{Type: "Feature"})

	d, err := FromCollection(fc)

	require.NoError(t, err)
	assert.Len(t, d.Lines, 2)
	require.Len(t, d.Polygons, 1)
	assert.Len(t, d.Polygons[0], 1)
	assert.Len(t, d.Points, 2+4+1+2)
	assert.Equal(t, 2, d.PointFeature[len(d.PointFeature)-1])
	assert.Equal(t, BBox{MinX: 0, MinY: -3, MaxX: 5, MaxY: 2}, d.BBox)
}

func TestFromCollection_NoGeometry(t *testing.T) {
	_, err := FromCollection(geojson.NewFeatureCollection())
	assert.ErrorIs(t, err, ErrNoGeometry)

	_, err = FromCollection(nil)
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestFromCollection_SinglePointBoxIsEmpty(t *testing.T) {
	d, err := FromCollection(collection(orb.Point{1, 2}))

	require.NoError(t, err)
	assert.True(t, d.BBox.Empty())
}

func TestFields(t *testing.T) {
	a := geojson.NewFeature(orb.Point{0, 0})
	a.Properties = geojson.Properties{"name": "a", "pop": 10.0}
	b := geojson.NewFeature(orb.Point{1, 1})
	b.Properties = geojson.Properties{"city": "x", "name": "b"}
	fc := geojson.NewFeatureCollection()
	fc.Append(a)
	fc.Append(b)

	assert.Equal(t, []string{"city", "name", "pop"}, Fields(fc))
	assert.Nil(t, Fields(nil))

	rows := Table(fc, Fields(fc))
	assert.Equal(t, [][]string{{"", "a", "10"}, {"x", "b", ""}}, rows)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"s", "s"},
		{1.5, "1.5"},
		{40.0, "40"},
		{true, "true"},
		{false, "false"},
		{[]any{"a", 1.0}, `["a",1]`},
		{map[string]any{"k": "v"}, `{"k":"v"}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}
