package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jhoicas/veon-api/pkg/config"
	"github.com/jhoicas/veon-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONConServicioYNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(config.AppConfig{Env: "production", Name: "veon-api", LogLevel: "warn"}, &buf)

	log.Info().Msg("descartado")
	log.Warn().Str("sale_id", "s1").Msg("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "veon-api", line["service"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "s1", line["sale_id"])
	assert.Equal(t, "visible", line["message"])
}

func TestNewWithWriter_NivelInvalidoEsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(config.AppConfig{Env: "staging", LogLevel: "ruidoso"}, &buf)

	log.Debug().Msg("no")
	assert.Zero(t, buf.Len())
	log.Info().Msg("si")
	assert.Contains(t, buf.String(), `"message":"si"`)
}
