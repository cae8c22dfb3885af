package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/qolzam/telar-blog/internal/pkg/log"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	t.Cleanup(func() {
		color.NoColor = noColor
		log.SetOutput(color.Output)
	})
	return buf
}

func TestLogConfig(t *testing.T) {
	t.Run("debug dumps the redacted config", func(t *testing.T) {
		buf := captureLog(t)
		cfg, err := platformconfig.LoadFromMap(map[string]string{
			"DEBUG":             "true",
			"POSTGRES_PASSWORD": "pg-secret",
			"GRPC_PORT":         "9191",
		})
		require.NoError(t, err)

		logConfig(cfg)

		out := buf.String()
		assert.Contains(t, out, "[DUMP]")
		assert.Contains(t, out, "GRPCPort: (int) 9191")
		assert.Contains(t, out, "[REDACTED]")
		assert.NotContains(t, out, "pg-secret")
	})

	t.Run("quiet without debug", func(t *testing.T) {
		buf := captureLog(t)
		cfg, err := platformconfig.LoadFromMap(map[string]string{"POSTGRES_PASSWORD": "pg-secret"})
		require.NoError(t, err)

		logConfig(cfg)

		assert.Empty(t, buf.String())
	})
}
