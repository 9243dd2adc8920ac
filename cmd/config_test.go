package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/boatramps/internal/config"
)

func TestWriteConfig(t *testing.T) {
	c := testConfig("https://www.batramper.se/karta", "public/data/boatramps.json")

	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, c))
	assert.Contains(t, buf.String(), "https://www.batramper.se/karta")
	assert.Contains(t, buf.String(), "public/data/boatramps.json")

	var back config.Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *c, back)
}
