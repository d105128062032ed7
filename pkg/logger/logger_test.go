package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El nombre de servicio configurado se emite como campo fijo en cada línea.
func TestNew_CampoServicioFijo(t *testing.T) {
	l := New(Config{Env: "production", Level: "info", Service: "pos-bodegas"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Str("storage", "memory").Msg("iniciando aplicación")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "pos-bodegas", line["service"])
	assert.Equal(t, "memory", line["storage"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("cualquier-cosa"),
		"un nivel desconocido cae en info")
}
