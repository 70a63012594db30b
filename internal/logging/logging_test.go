package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer

	log, err := New(&buf, Options{Level: "WARN"})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("class", "shop.Order").Msg("access override ignored")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "| WARN  |")
	assert.Contains(t, out, " class=shop.Order")
	assert.Contains(t, out, "access override ignored")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	log, err := New(&buf, Options{Level: "debug", JSON: true})
	require.NoError(t, err)

	log.Debug().Int("classes", 3).Msg("built entity hierarchy")
	assert.Contains(t, buf.String(), `"classes":3`)
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}
