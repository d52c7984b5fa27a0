package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mf-comercial/pkg/logger"
)

func TestNewWithWriter_ProduccionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.Config{Env: "production", Level: "info"}, &buf)
	log.Component("persistence").Warn().Str("key", "mf.orders.v1").Msg("escritura fallida")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "la salida debe ser JSON")
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "persistence", entry["component"])
	assert.Equal(t, "mf.orders.v1", entry["key"])
}

func TestNewWithWriter_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.Config{Env: "production", Level: "error"}, &buf)
	log.Info().Msg("no debe aparecer")
	assert.Empty(t, buf.String())
}
