package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV_Basic(t *testing.T) {
	data := "\xEF\xBB\xBFname,lat,lon\nA,40.7,-74\n\n   \nB,51.5,-0.1\n"

	rows, err := decodeCSV([]byte(data))

	require.NoError(t, err)
	assert.Equal(t, []string{"name", "lat", "lon"}, rows.Columns)
	require.Len(t, rows.Records, 3)
	assert.Equal(t, Record{"name": "A", "lat": "40.7", "lon": "-74"}, rows.Records[0])
	assert.Equal(t, Record{"name": "   "}, rows.Records[1], "only empty lines are skipped")
	assert.Equal(t, "B", rows.Records[2]["name"])
}

func TestDecodeCSV_KeepsLeadingSpace(t *testing.T) {
	rows, err := decodeCSV([]byte("name,lat,lon\n Oslo, 59.9,10.7\n"))

	require.NoError(t, err)
	assert.Equal(t, Record{"name": " Oslo", "lat": " 59.9", "lon": "10.7"}, rows.Records[0])
}

func TestDecodeCSV_SniffsDelimiter(t *testing.T) {
	tests := map[string]string{
		"semicolon": "lat;lon;name\n1;2;a\n",
		"tab":       "lat\tlon\tname\n1\t2\ta\n",
		"pipe":      "lat|lon|name\n1|2|a\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			rows, err := decodeCSV([]byte(data))
			require.NoError(t, err)
			assert.Equal(t, Record{"lat": "1", "lon": "2", "name": "a"}, rows.Records[0])
		})
	}
}

func TestSniffDelimiter_IgnoresQuoted(t *testing.T) {
	assert.Equal(t, ',', sniffDelimiter([]byte(`"a;b;c",lat,lon`+"\n1,2,3")))
	assert.Equal(t, ',', sniffDelimiter([]byte("single")))
}

func TestDecodeCSV_RaggedRows(t *testing.T) {
	data := "lat,lon,name\n1,2\n3,4,c,extra1,extra2\n"

	rows, err := decodeCSV([]byte(data))

	require.NoError(t, err)
	assert.Equal(t, []string{"lat", "lon"}, rows.Columns)
	assert.Equal(t, Record{"lat": "1", "lon": "2"}, rows.Records[0])
	assert.Equal(t, []any{"extra1", "extra2"}, rows.Records[1][ExtraColumn])
	assert.Equal(t, "c", rows.Records[1]["name"])
}

func TestDecodeCSV_DuplicateAndBlankHeaders(t *testing.T) {
	data := "lat,lat,,lon,\n1,2,3,4,5\n"

	rows, err := decodeCSV([]byte(data))

	require.NoError(t, err)
	assert.Equal(t, []string{"lat", "lat_1", "__EMPTY", "lon", "__EMPTY_1"}, rows.Columns)
}

func TestDecodeCSV_HeaderOnly(t *testing.T) {
	rows, err := decodeCSV([]byte("lat,lon\n"))

	require.NoError(t, err)
	assert.Empty(t, rows.Records)
}

func TestDecodeCSV_Empty(t *testing.T) {
	rows, err := decodeCSV(nil)

	require.NoError(t, err)
	assert.Empty(t, rows.Records)
}

func TestDecodeCSV_QuotedFields(t *testing.T) {
	data := "name,lat,lon\n\"Doe, John\",1,2\n"

	rows, err := decodeCSV([]byte(data))

	require.NoError(t, err)
	assert.Equal(t, "Doe, John", rows.Records[0]["name"])
}
