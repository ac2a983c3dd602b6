package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/logger"
)

func TestNewWithWriter_NivelYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "warn").Component("storefront")

	l.Info().Msg("ignorado")
	assert.Zero(t, buf.Len())

	l.Warn().Str("session_id", "s1").Msg("guardado fallido")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "storefront", entry["component"])
	assert.Equal(t, "s1", entry["session_id"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Error().Msg("nada") })
}
