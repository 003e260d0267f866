package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heartgate/internal/card"
	"heartgate/internal/config"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := parseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseLevel("loud")
	assert.Error(t, err)
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartgate.log")
	logger, closeLog, err := newLogger(path, "debug")
	require.NoError(t, err)
	logger.Debug("hello", "screen", "password")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "screen=password")
}

func TestControllerOptions(t *testing.T) {
	cfg := config.Default()
	cfg.ImageDir = "photos"
	opts := controllerOptions(cfg, newRand(1), nil)

	ctrl := card.NewController(opts)
	slot, err := ctrl.Slot(2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("photos", "photo2.jpg"), slot.Ref)

	slot, err = ctrl.SlotFailed(2)
	require.NoError(t, err)
	assert.Equal(t, "https://picsum.photos/seed/102/800/800", slot.Ref)

	assert.Equal(t, "22.02", ctrl.Secret())
	assert.Equal(t, 150, opts.Burst.Particles)
}

func TestStartWatcher_MissingDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.ImageDir = filepath.Join(t.TempDir(), "absent")
	assert.Nil(t, startWatcher(t.Context(), cfg, slog.New(slog.DiscardHandler)))
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "heartgate version "+Version+"\n", out.String())
}
