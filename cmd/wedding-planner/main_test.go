package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-planner/internal/config"
)

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	root := zerolog.New(&buf)

	for _, name := range []string{"Registry", "Syncer", "Controller"} {
		buf.Reset()
		componentLogger(root, name).Info().Msg("hello")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, name, line["component"])
	}

	buf.Reset()
	root.Info().Msg("root")
	assert.NotContains(t, buf.String(), "component", "root logger stays untagged")
}

func TestSetupLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.log")
	logger, closeLog, err := setupLogger(config.LogConfig{Level: "warn", File: path})
	require.NoError(t, err)

	componentLogger(logger, "Registry").Info().Msg("dropped")
	componentLogger(logger, "Registry").Warn().Msg("kept")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), `"component":"Registry"`)
}
