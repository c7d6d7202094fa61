package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStripsByteOrderMark(t *testing.T) {
	table, err := Decode("\uFEFFstop_id,stop_name,stop_lat,stop_lon\n1,Test,41.0,29.0\n", ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"stop_id", "stop_name", "stop_lat", "stop_lon"}, table.Headers)

	rows := table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"stop_id": "1", "stop_name": "Test", "stop_lat": "41.0", "stop_lon": "29.0"}, rows[0])
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	table, err := Decode("\n\nroute_id,route_short_name\n\n1,500T\n2,34\n\n\n", ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"route_id", "route_short_name"}, table.Headers)
	assert.Equal(t, 2, table.Len())
}

func TestDecodeNormalisesHeaders(t *testing.T) {
	table, err := Decode("\"Stop_ID\", Stop Name ,STOP_LAT.,stop-lon\nA,B,1,2\n", ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"stop_id", "stopname", "stop_lat", "stoplon"}, table.Headers)
}

func TestDecodeShortRows(t *testing.T) {
	table, err := Decode("a,b,c\n1,2\n", ',')
	require.NoError(t, err)

	assert.Equal(t, Row{"a": "1", "b": "2", "c": ""}, table.Rows()[0])
}

func TestDecodeOtherDelimiter(t *testing.T) {
	table, err := Decode("a;b\n1;\"x;y\"\n", ';')
	require.NoError(t, err)

	assert.Equal(t, "x;y", table.Rows()[0]["b"])
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode("\uFEFF\n\n", ',')
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestResolveColumns(t *testing.T) {
	table, err := Decode("durak_id,durak_adi,latitude,longitude\n1,Taksim,41.03,28.98\n", ',')
	require.NoError(t, err)

	schema := table.Resolve([]Column{
		{Name: "stop_id", Fallbacks: []string{"id"}},
		{Name: "stop_name", Fallbacks: []string{"name", "adi"}},
		{Name: "stop_lat", Fallbacks: []string{"lat"}},
		{Name: "stop_lon", Fallbacks: []string{"lon"}},
		{Name: "stop_desc", Fallbacks: []string{"desc"}},
	})

	assert.Equal(t, "durak_id", schema["stop_id"])
	assert.Equal(t, "durak_adi", schema["stop_name"])
	assert.Equal(t, "latitude", schema["stop_lat"])
	assert.Equal(t, "longitude", schema["stop_lon"])
	assert.False(t, schema.Has("stop_desc"))

	row := table.Rows()[0]
	assert.Equal(t, "Taksim", schema.Value(row, "stop_name"))
	assert.Equal(t, "", schema.Value(row, "stop_desc"))
}

func TestResolvePrefersExactMatch(t *testing.T) {
	table, err := Decode("parent_stop_id,stop_id\np,s\n", ',')
	require.NoError(t, err)

	schema := table.Resolve([]Column{{Name: "stop_id", Fallbacks: []string{"id"}}})
	assert.Equal(t, "stop_id", schema["stop_id"])
}

type testStop struct {
	ID   string `csv:"stop_id"`
	Name string `csv:"stop_name"`
	Lat  string `csv:"stop_lat"`
}

func TestUnmarshal(t *testing.T) {
	table, err := Decode("ID,Name,Latitude\n1,Kadıköy,40.99\n2,Üsküdar,41.02\n", ',')
	require.NoError(t, err)

	var stops []testStop
	err = table.Unmarshal([]Column{
		{Name: "stop_id", Fallbacks: []string{"id"}},
		{Name: "stop_name", Fallbacks: []string{"name"}},
		{Name: "stop_lat", Fallbacks: []string{"lat"}},
	}, &stops)
	require.NoError(t, err)

	assert.Equal(t, []testStop{
		{ID: "1", Name: "Kadıköy", Lat: "40.99"},
		{ID: "2", Name: "Üsküdar", Lat: "41.02"},
	}, stops)
}
