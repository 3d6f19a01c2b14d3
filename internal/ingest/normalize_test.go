package ingest

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_BuildsPointsWithFullProperties(t *testing.T) {
	rows := rowsOf([]string{"name", "lat", "lon"},
		[]any{"A", "40.7", "-74.0"},
		[]any{"B", 51.5, -0.12},
	)

	fc, dropped, err := Normalize(rows, Columns{Lat: "lat", Lon: "lon"})

	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, orb.Point{-74.0, 40.7}, fc.Features[0].Geometry)
	assert.Equal(t, "A", fc.Features[0].Properties["name"])
	assert.Equal(t, "40.7", fc.Features[0].Properties["lat"])
	assert.Equal(t, "-74.0", fc.Features[0].Properties["lon"])
	assert.Equal(t, orb.Point{-0.12, 51.5}, fc.Features[1].Geometry)
}

func TestNormalize_DropsBadRowsSilently(t *testing.T) {
	rows := rowsOf([]string{"lat", "lon"},
		[]any{"10", "20"},
		[]any{"abc", "20"},
		[]any{"95", "20"},
		[]any{"10", "-181"},
		[]any{nil, "20"},
		[]any{"11", "21"},
	)

	fc, dropped, err := Normalize(rows, Columns{Lat: "lat", Lon: "lon"})

	require.NoError(t, err)
	assert.Equal(t, 4, dropped)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, orb.Point{20, 10}, fc.Features[0].Geometry)
	assert.Equal(t, orb.Point{21, 11}, fc.Features[1].Geometry)
}

func TestNormalize_LenientLeadingParse(t *testing.T) {
	rows := rowsOf([]string{"lat", "lon"}, []any{"40.7 N", "73.9W"})

	fc, _, err := Normalize(rows, Columns{Lat: "lat", Lon: "lon"})

	require.NoError(t, err)
	assert.Equal(t, orb.Point{73.9, 40.7}, fc.Features[0].Geometry)
}

func TestNormalize_BoundsAreInclusive(t *testing.T) {
	rows := rowsOf([]string{"lat", "lon"},
		[]any{"90", "180"},
		[]any{"-90", "-180"},
	)

	fc, _, err := Normalize(rows, Columns{Lat: "lat", Lon: "lon"})

	require.NoError(t, err)
	assert.Len(t, fc.Features, 2)
}

func TestNormalize_EmptyResultFails(t *testing.T) {
	rows := rowsOf([]string{"lat", "lon"}, []any{"100", "0"})

	fc, dropped, err := Normalize(rows, Columns{Lat: "lat", Lon: "lon"})

	assert.Nil(t, fc)
	assert.Equal(t, 1, dropped)
	assert.True(t, errors.Is(err, NoValidRows))
}

func TestNormalize_PropertiesAreACopy(t *testing.T) {
	rows := rowsOf([]string{"lat", "lon"}, []any{"1", "2"})

	fc, _, err := Normalize(rows, Columns{Lat: "lat", Lon: "lon"})
	require.NoError(t, err)

	rows.Records[0]["lat"] = "changed"
	assert.Equal(t, "1", fc.Features[0].Properties["lat"])
}
