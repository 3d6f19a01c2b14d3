package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geomap/internal/ingest"
)

func TestVersionCmd_Executes(t *testing.T) {
	original := version
	version = "test-1.2.3"
	defer func() { version = original }()

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "geomap version test-1.2.3")
}

func TestInspectCmd_RequiresExactlyOneArg(t *testing.T) {
	_, _, err := execute(t, "inspect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestInspectCmd_Text(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)

	out, _, err := execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "file:      cities.csv")
	assert.Contains(t, out, "format:    csv")
	assert.Contains(t, out, "latitude:  lat")
	assert.Contains(t, out, "longitude: lon")
	assert.Contains(t, out, "features:  2")
	assert.Contains(t, out, "bbox:      [-77.04, -12.05, 2.35, 48.85]")
	assert.Contains(t, out, "fields:    lat, lon, name")
}

func TestInspectCmd_JSON(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)

	out, _, err := execute(t, "inspect", "--json", path)
	require.NoError(t, err)

	var s summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "cities.csv", s.File)
	assert.Equal(t, 2, s.Features)
	assert.Equal(t, "lat", s.DetectedLat)
	assert.Equal(t, []float64{-77.04, -12.05, 2.35, 48.85}, s.BBox)
}

func TestInspectCmd_NativeGeoJSON(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[3,4]]},"properties":{"id":7}}]}`
	path := writeFile(t, "roads.geojson", doc)

	out, _, err := execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "latitude:  "+ingest.NativeGeometry)
	assert.Contains(t, out, "fields:    id")
}

func TestInspectCmd_IngestError(t *testing.T) {
	path := writeFile(t, "bad.csv", "a,b\nx,y\n")

	_, _, err := execute(t, "inspect", path)
	require.Error(t, err)
	kind, ok := ingest.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ingest.NoCoordinateColumns, kind)
}

func TestInspectCmd_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "notes.txt", "hello")

	_, _, err := execute(t, "inspect", path)
	require.Error(t, err)
	kind, ok := ingest.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ingest.UnsupportedFormat, kind)
}

func TestConvertCmd_Stdout(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)

	out, _, err := execute(t, "convert", path)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "Paris", fc.Features[0].Properties["name"])
}

func TestConvertCmd_NativeGeoJSONUnchanged(t *testing.T) {
	doc := `{"type":"FeatureCollection","name":"peaks","features":[{"type":"Feature","id":1,"geometry":{"type":"Point","coordinates":[7.65,45.97,4478]},"properties":{}}]}`
	path := writeFile(t, "peaks.geojson", doc)

	out, _, err := execute(t, "convert", path)
	require.NoError(t, err)
	assert.JSONEq(t, doc, out)
}

func TestExportCmd_NativeGeoJSONKeepsAltitude(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[7.65,45.97,4478]},"properties":{"name":"Matterhorn"}}]}`
	path := writeFile(t, "peaks.geojson", doc)
	dst := filepath.Join(t.TempDir(), "peaks.html")

	_, _, err := execute(t, "export", path, "-o", dst)
	require.NoError(t, err)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"coordinates":[7.65,45.97,4478]`)
}

func TestConvertCmd_OutputFile(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)
	dst := filepath.Join(t.TempDir(), "cities.geojson")

	out, _, err := execute(t, "convert", "--indent", "-o", dst, path)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  \"type\": \"FeatureCollection\"")
}

func TestConvertCmd_HasFlags(t *testing.T) {
	f := convertCmd.Flags().Lookup("output")
	require.NotNil(t, f)
	assert.Equal(t, "o", f.Shorthand)
	assert.NotNil(t, convertCmd.Flags().Lookup("indent"))
}

func TestExportCmd_Defaults(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, _, err := execute(t, "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote cities.html (2 features)")

	b, err := os.ReadFile(filepath.Join(dir, "cities.html"))
	require.NoError(t, err)
	page := string(b)
	assert.Contains(t, page, "<title>cities</title>")
	assert.Contains(t, page, "Paris")
	assert.Regexp(t, `const initialBasemap =\s*\{"name":"CartoDB Positron"`, page)
}

func TestExportCmd_Options(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)
	dst := filepath.Join(t.TempDir(), "out.html")

	_, _, err := execute(t, "export", path,
		"-o", dst,
		"--title", "World Cities",
		"--fields", "name, lat",
		"--color-field", "name",
		"--palette", "pastel",
		"--basemap", "imagery",
	)
	require.NoError(t, err)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	page := string(b)
	assert.Contains(t, page, "World Cities")
	assert.Regexp(t, `const initialBasemap =\s*\{"name":"World Imagery"`, page)
	assert.Contains(t, page, "#fca5a5")
	assert.Contains(t, page, `"Lima"`)
}

func TestExportCmd_UnknownField(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)
	dst := filepath.Join(t.TempDir(), "out.html")

	_, _, err := execute(t, "export", path, "-o", dst, "--fields", "population")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "population"`)
	assert.NoFileExists(t, dst)
}

func TestExportCmd_UnknownColorField(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)
	dst := filepath.Join(t.TempDir(), "out.html")

	_, _, err := execute(t, "export", path, "-o", dst, "--color-field", "country")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown color field "country"`)
}

func TestSplitFields(t *testing.T) {
	assert.Nil(t, splitFields(""))
	assert.Nil(t, splitFields(" , "))
	assert.Equal(t, []string{"a", "b c"}, splitFields("a, b c ,"))
}
