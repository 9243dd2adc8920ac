package output

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/boatramps/internal/extract"
	"github.com/sells-group/boatramps/internal/feature"
)

func TestWriteFile_IndentedLiteralUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "boatramps.json")
	fc := feature.Build(slices.Values([]extract.Record{
		{ID: "3", Name: "Hamnen i Öregrund & Co", Latitude: 60.34, Longitude: 18.44, URL: "https://www.batramper.se/ramp/hamnen-3"},
	}))

	require.NoError(t, WriteFile(path, fc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "{\n  \"type\": \"FeatureCollection\",\n  \"features\": [\n"))
	assert.Contains(t, text, `"name": "Hamnen i Öregrund & Co"`)
	assert.NotContains(t, text, `\u00d6`)
	assert.NotContains(t, text, `\u0026`)
}

func TestWriteFile_EmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boatramps.json")
	require.NoError(t, WriteFile(path, &feature.Collection{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}

func TestWriteFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boatramps.json")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer than the new one"), 0o644))

	require.NoError(t, WriteFile(path, &feature.Collection{}))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestWriteFile_FailureKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boatramps.json")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	// A feature without geometry cannot be encoded.
	bad := &feature.Collection{Features: []*feature.Feature{{Properties: feature.Properties{ID: "x"}}}}
	err := WriteFile(path, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode collection")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boatramps.json")
	fc := feature.Build(slices.Values([]extract.Record{
		{ID: "12", Name: "Ramp A", Latitude: 59.1, Longitude: 18.2},
		{ID: "ramp-b", Name: "Ramp B", Latitude: 58.0, Longitude: 17.0},
	}))
	require.NoError(t, WriteFile(path, fc))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "12", got.Features[0].Properties.ID)
	assert.Equal(t, 18.2, got.Features[0].Lng())
	assert.Equal(t, 59.1, got.Features[0].Lat())
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = ReadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestReadFile_RejectsUnqueryableFeatures(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"null.json":  `{"type":"FeatureCollection","features":[null]}`,
		"empty.json": `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"id":"a","name":"A","url":""},"geometry":{"type":"Point","coordinates":[]}}]}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			fc, err := ReadFile(path)
			require.Error(t, err)
			assert.Nil(t, fc)
		})
	}
}
