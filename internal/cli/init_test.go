package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensereport/internal/config"
	"expensereport/internal/storage"
)

func TestSetupLogger(t *testing.T) {
	logger := SetupLogger("debug", "json")
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = SetupLogger("bogus", "text")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// No .env present.
	require.NoError(t, LoadEnvFile())

	t.Setenv("EXPENSEREPORT_TEST_VAR", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXPENSEREPORT_TEST_VAR=loaded\n"), 0o600))
	require.NoError(t, os.Unsetenv("EXPENSEREPORT_TEST_VAR"))
	require.NoError(t, LoadEnvFile())
	assert.Equal(t, "loaded", os.Getenv("EXPENSEREPORT_TEST_VAR"))
}

func TestInitBackend(t *testing.T) {
	logger := SetupLogger("error", "text")
	cfg := &config.Config{DataBackend: "memory"}

	res, err := InitBackend(context.Background(), logger, cfg)
	require.NoError(t, err)
	defer res.Cleanup()

	ctx := context.Background()
	require.NoError(t, res.KV.Set(ctx, storage.KeyTheme, "dark"))
	v, err := res.KV.Get(ctx, storage.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	_, err = InitBackend(ctx, logger, &config.Config{DataBackend: "sheets"})
	assert.Error(t, err)
}

func TestSignalContext(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := SignalContext(parent, SetupLogger("error", "text"))
	defer cancel()

	cancelParent()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
