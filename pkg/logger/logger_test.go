package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Out: &buf}).Component("http")

	log.Info().Str("path", "/api/products").Msg("request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "/api/products", entry["path"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "verbose", Out: &buf})

	log.Debug().Msg("oculto")
	assert.Zero(t, buf.Len())

	log.Info().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error().Msg("nada") })
}
