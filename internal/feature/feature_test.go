package feature

import (
	"bytes"
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/boatramps/internal/extract"
)

func sampleRecords() []extract.Record {
	return []extract.Record{
		{ID: "12", Name: "Ramp A", Latitude: 59.1, Longitude: 18.2, Slug: "ramp-a-12", URL: "https://www.batramper.se/ramp/ramp-a-12"},
		{ID: "ramp-b", Name: "Ramp B", Latitude: 58.0, Longitude: 17.0, Slug: "ramp-b", URL: "https://www.batramper.se/ramp/ramp-b"},
	}
}

func TestNew_SwapsCoordinateOrder(t *testing.T) {
	for _, r := range sampleRecords() {
		f := New(r)
		assert.Equal(t, []float64{r.Longitude, r.Latitude}, f.Geometry.FlatCoords())
		assert.Equal(t, r.Longitude, f.Lng())
		assert.Equal(t, r.Latitude, f.Lat())
		assert.Equal(t, Properties{ID: r.ID, Name: r.Name, URL: r.URL}, f.Properties)
	}
}

func TestBuild_PreservesOrderAndDuplicates(t *testing.T) {
	recs := sampleRecords()
	recs = append(recs, extract.Record{ID: "12", Name: "Ramp A again", Latitude: 1, Longitude: 2})

	fc := Build(slices.Values(recs))
	require.Equal(t, 3, fc.Len())
	assert.Equal(t, "12", fc.Features[0].Properties.ID)
	assert.Equal(t, "ramp-b", fc.Features[1].Properties.ID)
	assert.Equal(t, "12", fc.Features[2].Properties.ID)
}

func TestBuild_Empty(t *testing.T) {
	fc := Build(slices.Values([]extract.Record(nil)))
	require.NotNil(t, fc.Features)
	assert.Equal(t, 0, fc.Len())

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}

func TestMarshal_GeoJSONShape(t *testing.T) {
	fc := Build(slices.Values(sampleRecords()))

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"properties": {"id": "12", "name": "Ramp A", "url": "https://www.batramper.se/ramp/ramp-a-12"},
				"geometry": {"type": "Point", "coordinates": [18.2, 59.1]}
			},
			{
				"type": "Feature",
				"properties": {"id": "ramp-b", "name": "Ramp B", "url": "https://www.batramper.se/ramp/ramp-b"},
				"geometry": {"type": "Point", "coordinates": [17.0, 58.0]}
			}
		]
	}`, string(data))
}

func TestMarshal_NoHTMLOrUnicodeEscaping(t *testing.T) {
	f := New(extract.Record{ID: "1", Name: "Båt & Fisk <Väst>", Latitude: 57.7, Longitude: 11.9})

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(f))
	assert.Contains(t, buf.String(), `"name":"Båt & Fisk <Väst>"`)
}

func TestMarshal_NilCollectionFeatures(t *testing.T) {
	data, err := json.Marshal(&Collection{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}

func TestMarshal_MissingGeometry(t *testing.T) {
	_, err := json.Marshal(&Feature{Properties: Properties{ID: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no geometry")
}

func TestUnmarshal_RoundTripKeepsCoordinates(t *testing.T) {
	fc := Build(slices.Values(sampleRecords()))
	data, err := json.Marshal(fc)
	require.NoError(t, err)

	var got Collection
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, 2, got.Len())
	for i, f := range got.Features {
		assert.Equal(t, fc.Features[i].Properties, f.Properties)
		assert.Equal(t, fc.Features[i].Geometry.FlatCoords(), f.Geometry.FlatCoords())
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"wrong collection type", `{"type":"Feature","features":[]}`, "unexpected collection type"},
		{"wrong feature type", `{"type":"FeatureCollection","features":[{"type":"Point"}]}`, "unexpected type"},
		{"missing geometry", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"id":"a"}}]}`, "no geometry"},
		{"not a point", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"id":"a"},"geometry":{"type":"LineString","coordinates":[[1,2],[3,4]]}}]}`, "want Point"},
		{"null entry", `{"type":"FeatureCollection","features":[null]}`, "entry 0 is null"},
		{"empty coordinates", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"id":"a"},"geometry":{"type":"Point","coordinates":[]}}]}`, "empty point"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fc Collection
			err := json.Unmarshal([]byte(tt.data), &fc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestUnmarshal_EmptyFeatures(t *testing.T) {
	var fc Collection
	require.NoError(t, json.Unmarshal([]byte(`{"type":"FeatureCollection"}`), &fc))
	assert.NotNil(t, fc.Features)
	assert.Equal(t, 0, fc.Len())
}
