package log_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uchroma/uchromad/internal/log"
)

func TestSetupLogger_DefaultsToStderr(t *testing.T) {
	logger, closers, err := log.SetupLogger("", "")
	require.NoError(t, err)
	assert.Empty(t, closers)
	assert.NotNil(t, logger)
}

func TestSetupLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uchromad.log")
	logger, closers, err := log.SetupLogger("debug", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)
	logger.Debug("hello")
	for _, c := range closers {
		_ = c.Close()
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestSetupLogger_RejectsUnknownLevel(t *testing.T) {
	_, _, err := log.SetupLogger("nonsense", "")
	assert.Error(t, err)
}
